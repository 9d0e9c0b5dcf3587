package entity

// User mirrors one record of the remote users API.
//
// The source imposes no schema beyond key presence, so every non-key field is
// independently optional: a key missing from the payload leaves the pointer
// nil and is stored as NULL. ID is externally assigned and keys the store.
type User struct {
	ID       *int64  `json:"id" validate:"required"`
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Website  *string `json:"website"`
}

// DerivedUser is a stored user plus the computed columns consumed by the
// dashboard. Derived values are recomputed on every read and never persisted.
type DerivedUser struct {
	User

	NameLength     int     `json:"name_length"`
	EmailDomain    *string `json:"email_domain"`
	UsernameLength int     `json:"username_length"`

	// CompanyNameLength mirrors NameLength until the source exposes a
	// distinct company attribute.
	CompanyNameLength int `json:"company_name_length"`
}
