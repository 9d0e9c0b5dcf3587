package application

import (
	"strings"
	"unicode/utf8"

	"github.com/userboard/userboard/internal/domain/entity"
)

// nullText is the textual rendering of an absent value. Length rules count
// characters over this text when the field is nil, so a missing name yields
// length 4, not 0. Downstream views depend on that behaviour; do not "fix"
// it to zero without flagging the change.
const nullText = "null"

func textOrNull(s *string) string {
	if s == nil {
		return nullText
	}
	return *s
}

func textLength(s *string) int {
	return utf8.RuneCountInString(textOrNull(s))
}

// emailDomain returns the lower-cased substring after the last '@', or nil
// when the email is absent or contains no '@' at all.
func emailDomain(email *string) *string {
	if email == nil {
		return nil
	}
	i := strings.LastIndex(*email, "@")
	if i < 0 {
		return nil
	}
	d := strings.ToLower((*email)[i+1:])
	return &d
}

// Derive computes the dashboard columns for every stored row. It is pure:
// no I/O, no hidden state, identical input yields identical output. An empty
// input produces an empty (non-nil) table with the full column set.
func Derive(rows []entity.User) []entity.DerivedUser {
	out := make([]entity.DerivedUser, 0, len(rows))
	for _, u := range rows {
		nameLen := textLength(u.Name)
		out = append(out, entity.DerivedUser{
			User:              u,
			NameLength:        nameLen,
			EmailDomain:       emailDomain(u.Email),
			UsernameLength:    textLength(u.Username),
			CompanyNameLength: nameLen,
		})
	}
	return out
}
