package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/domain/entity"
	"github.com/userboard/userboard/pkg/validation"
)

type fakeRepo struct {
	rows      []entity.User
	upsertErr error
}

func (f *fakeRepo) UpsertAll(_ context.Context, users []entity.User) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows = append(f.rows, users...)
	return nil
}

func (f *fakeRepo) ReadAll(_ context.Context) ([]entity.User, error) {
	return append([]entity.User(nil), f.rows...), nil
}

type fakeFetcher struct {
	users []entity.User
	err   error
}

func (f *fakeFetcher) FetchUsers(_ context.Context) ([]entity.User, error) {
	return f.users, f.err
}

func strPtr(s string) *string { return &s }
func idPtr(n int64) *int64    { return &n }

func sampleUsers() []entity.User {
	return []entity.User{
		{ID: idPtr(1), Name: strPtr("Ann"), Username: strPtr("ann1"), Email: strPtr("ann@x.com")},
		{ID: idPtr(2), Name: strPtr("Bo"), Username: strPtr("bo2"), Email: strPtr("bo@y.org")},
	}
}

func newTestRouter(repo *fakeRepo, fetcher *fakeFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := application.NewService(repo, fetcher, validation.New(), logger, false)
	h := NewDashboardHandler(svc, logger)

	r := gin.New()
	r.GET("/", h.Home)
	r.GET("/charts/:name", h.Chart)
	r.GET("/charts/:name/export", h.ChartExport)
	r.GET("/api/users", h.ListUsers)
	r.GET("/api/users/export/csv", h.ExportCSV)
	r.POST("/api/sync", h.SyncNow)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExportCSV_HeaderAndRows(t *testing.T) {
	r := newTestRouter(&fakeRepo{rows: sampleUsers()}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/api/users/export/csv")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t,
		"id,name,username,email,phone,website,name_length,email_domain,username_length,company_name_length",
		lines[0])
	require.Equal(t, "1,Ann,ann1,ann@x.com,,,3,x.com,4,3", lines[1])
	require.Equal(t, "2,Bo,bo2,bo@y.org,,,2,y.org,3,2", lines[2])
}

func TestExportCSV_EmptyTableStillHasHeader(t *testing.T) {
	r := newTestRouter(&fakeRepo{}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/api/users/export/csv")
	require.Equal(t, http.StatusOK, w.Code)

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "id,name,"))
}

func TestListUsers_Envelope(t *testing.T) {
	r := newTestRouter(&fakeRepo{rows: sampleUsers()}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/api/users")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool                 `json:"success"`
		Data    []entity.DerivedUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Len(t, env.Data, 2)
	require.Equal(t, 3, env.Data[0].NameLength)
	require.Equal(t, "x.com", *env.Data[0].EmailDomain)
}

func TestChart_RendersInteractiveDocument(t *testing.T) {
	r := newTestRouter(&fakeRepo{rows: sampleUsers()}, &fakeFetcher{})

	for _, name := range []string{
		"name-length-histogram", "email-domains", "email-domains-donut",
		"username-vs-name", "name-bubbles",
	} {
		w := do(t, r, http.MethodGet, "/charts/"+name)
		require.Equal(t, http.StatusOK, w.Code, name)
		require.Contains(t, w.Header().Get("Content-Type"), "text/html", name)
		require.Contains(t, w.Body.String(), "echarts", name)
	}
}

func TestChartExport_AttachmentDisposition(t *testing.T) {
	r := newTestRouter(&fakeRepo{rows: sampleUsers()}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/charts/email-domains/export")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="email-domains.html"`)
}

func TestChart_UsersTable(t *testing.T) {
	r := newTestRouter(&fakeRepo{rows: sampleUsers()}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/charts/users-table")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ann@x.com")
}

func TestChart_UnknownName(t *testing.T) {
	r := newTestRouter(&fakeRepo{rows: sampleUsers()}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/charts/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestChart_EmptyTableRendersWarningNotChart(t *testing.T) {
	r := newTestRouter(&fakeRepo{}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/charts/email-domains")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "suppressed")
	require.NotContains(t, w.Body.String(), "echarts")
}

func TestHome_EmptyTableShowsWarning(t *testing.T) {
	r := newTestRouter(&fakeRepo{}, &fakeFetcher{})

	w := do(t, r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "No user data available")
}

func TestSyncNow_FetchFailure(t *testing.T) {
	r := newTestRouter(&fakeRepo{}, &fakeFetcher{err: errors.New("api down")})

	w := do(t, r, http.MethodPost, "/api/sync")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.False(t, env.Success)
	require.NotEmpty(t, env.Message)
}

func TestSyncNow_StoresAndReports(t *testing.T) {
	repo := &fakeRepo{}
	r := newTestRouter(repo, &fakeFetcher{users: sampleUsers()})

	w := do(t, r, http.MethodPost, "/api/sync")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.rows, 2)
}
