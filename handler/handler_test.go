package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"givehope/auth"
	"givehope/db"
	"givehope/domain"
	"givehope/mailer"
	"givehope/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"
const basePath = "/server"

type fakeUploader struct {
	err     error
	uploads []string
}

func (f *fakeUploader) Upload(_ context.Context, name, contentType string, size int64, r io.Reader) (domain.Attachment, error) {
	if f.err != nil {
		return domain.Attachment{}, f.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return domain.Attachment{}, err
	}
	key := fmt.Sprintf("%d_%s", len(f.uploads), name)
	f.uploads = append(f.uploads, key)
	return domain.Attachment{
		Name: name,
		URL:  "https://bucket.test/signed/" + key,
		Type: contentType,
		Size: size,
	}, nil
}

type fakeMailer struct {
	err  error
	sent []mailer.Message
}

func (f *fakeMailer) Send(m mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type testServer struct {
	e        *echo.Echo
	h        *Handler
	store    *store.Store
	uploader *fakeUploader
	mailer   *fakeMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(conn))

	uploader := &fakeUploader{}
	sender := &fakeMailer{}
	s := store.New(conn)
	h := &Handler{
		Store:       s,
		Verifier:    auth.NewVerifier(testSecret),
		Uploader:    uploader,
		Mailer:      sender,
		JWTSecret:   testSecret,
		PhoneDigits: 11,
	}

	e := echo.New()
	h.Register(e, basePath)
	return &testServer{e: e, h: h, store: s, uploader: uploader, mailer: sender}
}

func adminToken(t *testing.T, exp time.Time) string {
	t.Helper()
	return tokenWithRole(t, "admin", exp)
}

func tokenWithRole(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":           "user-1",
		"email":         "admin@example.org",
		"exp":           exp.Unix(),
		"user_metadata": map[string]interface{}{"role": role},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, basePath+path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var errForced = errors.New("provider unavailable")

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode(t, rec)["status"])
}
