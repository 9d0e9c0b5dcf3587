package placeholder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchUsers_MapsFieldsAndPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 2, "name": "Bo", "username": "bo2", "email": "bo@y.org", "extra": "ignored"},
			{"id": 1, "username": "ann1"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	users, err := client.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Source array order, not id order.
	require.Equal(t, int64(2), *users[0].ID)
	require.Equal(t, "Bo", *users[0].Name)
	require.Equal(t, "bo@y.org", *users[0].Email)

	// Missing keys map to nil fields, never to a per-record failure.
	require.Equal(t, int64(1), *users[1].ID)
	require.Nil(t, users[1].Name)
	require.Nil(t, users[1].Email)
	require.Equal(t, "ann1", *users[1].Username)
}

func TestFetchUsers_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	users, err := NewClient(srv.URL, time.Second).FetchUsers(context.Background())
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestFetchUsers_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).FetchUsers(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestFetchUsers_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).FetchUsers(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestFetchUsers_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 20*time.Millisecond).FetchUsers(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestFetchUsers_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).FetchUsers(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}
