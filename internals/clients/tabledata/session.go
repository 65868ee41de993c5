// internals/clients/tabledata/session.go
package tabledata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// Event perubahan sesi, dikirim ke listener OnChange.
const (
	EventSignedIn       = "SIGNED_IN"
	EventSignedOut      = "SIGNED_OUT"
	EventTokenRefreshed = "TOKEN_REFRESHED"
)

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SessionProfile struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name,omitempty"`
	UserRoles    *string `json:"user_roles,omitempty"`
	Position     *string `json:"position,omitempty"`
	RumahQuranID *int64  `json:"rumah_quran_id,omitempty"`
}

type Session struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	User         SessionUser     `json:"user"`
	Profile      *SessionProfile `json:"profile,omitempty"`
	SignedInAt   time.Time       `json:"signed_in_at"`
}

// SessionManager memegang sesi login dan memberi tahu listener tiap ada
// perubahan. Aman dipakai lintas goroutine.
type SessionManager struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu        sync.RWMutex
	current   *Session
	listeners []func(event string, s *Session)

	persistPath string
}

type SessionOption func(*SessionManager)

func WithSessionHTTPClient(h *http.Client) SessionOption {
	return func(m *SessionManager) { m.http = h }
}

// WithPersistence menyimpan sesi ke file sehingga login bertahan antar proses.
func WithPersistence(path string) SessionOption {
	return func(m *SessionManager) { m.persistPath = path }
}

// NewSessionManager memvalidasi konfigurasi di muka, sama seperti New.
func NewSessionManager(baseURL, apiKey string, opts ...SessionOption) (*SessionManager, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("tabledata: base URL wajib diisi")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("tabledata: apikey wajib diisi")
	}
	m := &SessionManager{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.persistPath != "" {
		m.loadPersisted()
	}
	return m, nil
}

/* ===================== PUBLIC API ===================== */

// Token memenuhi TokenSource: access token sesi aktif, atau apikey
// sebagai identitas anonim.
func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current != nil {
		return m.current.AccessToken
	}
	return m.apiKey
}

func (m *SessionManager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// OnChange mendaftarkan listener; dipanggil sinkron setiap sesi berubah.
func (m *SessionManager) OnChange(fn func(event string, s *Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// SignIn login lewat endpoint auth dan menyimpan sesinya.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload, _ := sonic.Marshal(map[string]string{"email": email, "password": password})

	var result struct {
		AccessToken  string          `json:"access_token"`
		RefreshToken string          `json:"refresh_token"`
		User         SessionUser     `json:"user"`
		Profile      *SessionProfile `json:"profile"`
	}
	if err := m.post(ctx, "/api/auth/login", payload, "", &result); err != nil {
		return nil, err
	}

	s := &Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
		Profile:      result.Profile,
		SignedInAt:   time.Now().UTC(),
	}
	m.setSession(s, EventSignedIn)
	return s, nil
}

// Refresh menukar refresh token dengan pasangan token baru (rotasi).
func (m *SessionManager) Refresh(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	cur := m.current
	m.mu.RUnlock()
	if cur == nil {
		return nil, fmt.Errorf("tabledata: belum ada sesi aktif")
	}

	payload, _ := sonic.Marshal(map[string]string{"refresh_token": cur.RefreshToken})
	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := m.post(ctx, "/api/auth/refresh-token", payload, "", &result); err != nil {
		return nil, err
	}

	next := *cur
	next.AccessToken = result.AccessToken
	next.RefreshToken = result.RefreshToken
	m.setSession(&next, EventTokenRefreshed)
	return &next, nil
}

// SignOut mencabut refresh token di server lalu membuang sesi lokal.
// Kegagalan jaringan tidak menahan sign-out lokal.
func (m *SessionManager) SignOut(ctx context.Context) error {
	m.mu.RLock()
	cur := m.current
	m.mu.RUnlock()

	var remoteErr error
	if cur != nil {
		payload, _ := sonic.Marshal(map[string]string{"refresh_token": cur.RefreshToken})
		remoteErr = m.post(ctx, "/api/auth/logout", payload, cur.AccessToken, nil)
	}
	m.setSession(nil, EventSignedOut)
	return remoteErr
}

/* ===================== INTERNAL ===================== */

func (m *SessionManager) setSession(s *Session, event string) {
	m.mu.Lock()
	m.current = s
	listeners := make([]func(string, *Session), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if m.persistPath != "" {
		m.persist(s)
	}
	for _, fn := range listeners {
		fn(event, s)
	}
}

func (m *SessionManager) post(ctx context.Context, path string, body []byte, bearer string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("tabledata: respons auth tidak valid: %w", err)
	}
	if resp.StatusCode >= 400 || !envelope.Success {
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}
	if dest != nil {
		if err := sonic.Unmarshal(envelope.Data, dest); err != nil {
			return fmt.Errorf("tabledata: respons auth tidak valid: %w", err)
		}
	}
	return nil
}

func (m *SessionManager) persist(s *Session) {
	if s == nil {
		_ = os.Remove(m.persistPath)
		return
	}
	if b, err := sonic.Marshal(s); err == nil {
		_ = os.WriteFile(m.persistPath, b, 0o600)
	}
}

func (m *SessionManager) loadPersisted() {
	b, err := os.ReadFile(m.persistPath)
	if err != nil {
		return
	}
	var s Session
	if err := sonic.Unmarshal(b, &s); err != nil {
		return
	}
	if s.AccessToken == "" {
		return
	}
	m.current = &s
}
