// internals/clients/tabledata/session_test.go
package tabledata

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginOK = `{
	"success": true,
	"message": "Login berhasil",
	"data": {
		"access_token": "access-abc",
		"refresh_token": "refresh-abc",
		"user": {"id": "3f6c0c7e-0f6e-4a3a-9a6e-111111111111", "email": "staf@yayasan.org"},
		"profile": {"id": 5, "user_roles": "STAFF", "rumah_quran_id": 2}
	}
}`

func newTestManager(t *testing.T, opts ...SessionOption) *SessionManager {
	t.Helper()
	mgr, err := NewSessionManager("http://api.local", "anon-key", opts...)
	require.NoError(t, err)
	return mgr
}

func TestSignInStoresSessionAndNotifies(t *testing.T) {
	mgr := newTestManager(t,
		WithSessionHTTPClient(fakeClient(func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			return jsonResponse(http.StatusOK, loginOK), nil
		})))

	var events []string
	mgr.OnChange(func(event string, s *Session) { events = append(events, event) })

	s, err := mgr.SignIn(context.Background(), "staf@yayasan.org", "rahasia-123")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", s.AccessToken)
	assert.Equal(t, "staf@yayasan.org", s.User.Email)
	require.NotNil(t, s.Profile)
	assert.Equal(t, int64(5), s.Profile.ID)

	assert.Equal(t, []string{EventSignedIn}, events)
	assert.Equal(t, "access-abc", mgr.Token())
}

func TestSignInFailureKeepsAnonymous(t *testing.T) {
	mgr := newTestManager(t,
		WithSessionHTTPClient(fakeClient(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized,
				`{"success":false,"message":"Email atau password salah"}`), nil
		})))

	_, err := mgr.SignIn(context.Background(), "staf@yayasan.org", "salah")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	// tanpa sesi → Token() = apikey (identitas anonim)
	assert.Equal(t, "anon-key", mgr.Token())
	assert.Nil(t, mgr.Current())
}

func TestRefreshRotatesTokens(t *testing.T) {
	calls := 0
	mgr := newTestManager(t,
		WithSessionHTTPClient(fakeClient(func(r *http.Request) (*http.Response, error) {
			calls++
			if r.URL.Path == "/api/auth/login" {
				return jsonResponse(http.StatusOK, loginOK), nil
			}
			assert.Equal(t, "/api/auth/refresh-token", r.URL.Path)
			return jsonResponse(http.StatusOK, `{
				"success": true, "message": "Token diperbarui",
				"data": {"access_token": "access-baru", "refresh_token": "refresh-baru"}
			}`), nil
		})))

	_, err := mgr.SignIn(context.Background(), "staf@yayasan.org", "rahasia-123")
	require.NoError(t, err)

	var events []string
	mgr.OnChange(func(event string, s *Session) { events = append(events, event) })

	s, err := mgr.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-baru", s.AccessToken)
	assert.Equal(t, "refresh-baru", s.RefreshToken)
	// identitas user dipertahankan dari sesi lama
	assert.Equal(t, "staf@yayasan.org", s.User.Email)
	assert.Equal(t, []string{EventTokenRefreshed}, events)
	assert.Equal(t, 2, calls)
}

func TestSignOutClearsSessionEvenIfServerErrors(t *testing.T) {
	mgr := newTestManager(t,
		WithSessionHTTPClient(fakeClient(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path == "/api/auth/login" {
				return jsonResponse(http.StatusOK, loginOK), nil
			}
			return jsonResponse(http.StatusInternalServerError,
				`{"success":false,"message":"server lagi tumbang"}`), nil
		})))

	_, err := mgr.SignIn(context.Background(), "staf@yayasan.org", "rahasia-123")
	require.NoError(t, err)

	var events []string
	mgr.OnChange(func(event string, s *Session) { events = append(events, event) })

	err = mgr.SignOut(context.Background())
	assert.Error(t, err) // error server dilaporkan...
	assert.Nil(t, mgr.Current())
	assert.Equal(t, "anon-key", mgr.Token()) // ...tapi sesi lokal tetap dibuang
	assert.Equal(t, []string{EventSignedOut}, events)
}

func TestSessionPersistsAcrossManagers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := newTestManager(t,
		WithPersistence(path),
		WithSessionHTTPClient(fakeClient(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, loginOK), nil
		})))
	_, err := first.SignIn(context.Background(), "staf@yayasan.org", "rahasia-123")
	require.NoError(t, err)

	// manager baru (proses baru) memuat sesi dari file
	second := newTestManager(t,
		WithPersistence(path),
		WithSessionHTTPClient(fakeClient(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"success":true,"message":"Logout berhasil","data":null}`), nil
		})))
	require.NotNil(t, second.Current())
	assert.Equal(t, "access-abc", second.Token())
	assert.Equal(t, "staf@yayasan.org", second.Current().User.Email)

	// sign-out menghapus file persist
	require.NoError(t, second.SignOut(context.Background()))
	third := newTestManager(t, WithPersistence(path))
	assert.Nil(t, third.Current())
}
