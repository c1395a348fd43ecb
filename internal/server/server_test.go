package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellchecker/internal/corrector"
	"spellchecker/pkg/options"
)

const fixturePath = "../dictionary/testdata"

type memStore struct {
	added, removed []string
	err            error
}

func (m *memStore) Add(_ context.Context, word string) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, word)
	return nil
}

func (m *memStore) Remove(_ context.Context, word string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, word)
	return nil
}

func newTestServer(t *testing.T, store Store, paths ...string) (*Server, *corrector.SpellCorrector) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	paths = append(paths, fixturePath)
	engine := corrector.NewSpellCorrector(options.WithLogger(logger), options.WithSearchPaths(paths...))
	require.NoError(t, engine.SetDictionary("en_US"))
	return New(engine, store, paths, logger), engine
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec, out := do(t, srv.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCheck(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	tests := []struct {
		name   string
		target string
		text   string
		want   []any
	}{
		{"bytes", "/api/v1/check", "hello — wrold", []any{
			map[string]any{"start": float64(10), "end": float64(15), "word": "wrold"},
		}},
		{"utf16", "/api/v1/check?units=utf16", "hello — wrold", []any{
			map[string]any{"start": float64(8), "end": float64(13), "word": "wrold"},
		}},
		{"clean", "/api/v1/check", "hello world", []any{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(map[string]string{"text": tc.text})
			require.NoError(t, err)
			rec, out := do(t, h, http.MethodPost, tc.target, string(body))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, out["misspelled"])
		})
	}
}

func TestInvalidInput(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/api/v1/check", `{"text": ""}`},
		{http.MethodPost, "/api/v1/check", `not json`},
		{http.MethodPost, "/api/v1/custom-word", `{"word": "  "}`},
		{http.MethodPut, "/api/v1/dictionary", `{}`},
	} {
		rec, out := do(t, h, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.target)
		assert.Equal(t, corrector.ErrInvalidInput.Error(), out["error"], tc.target)
	}
}

func TestWordAndSuggestions(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	rec, out := do(t, h, http.MethodGet, "/api/v1/words/wrold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "wrold", out["word"])
	assert.Equal(t, true, out["misspelled"])

	_, out = do(t, h, http.MethodGet, "/api/v1/words/hello", "")
	assert.Equal(t, false, out["misspelled"])

	rec, out = do(t, h, http.MethodGet, "/api/v1/suggestions/wrold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"world", "worlds"}, out["suggestions"])

	_, out = do(t, h, http.MethodGet, "/api/v1/suggestions/hello", "")
	assert.NotNil(t, out["suggestions"])
}

func TestCustomWords(t *testing.T) {
	store := &memStore{}
	srv, engine := newTestServer(t, store)
	h := srv.Handler()

	rec, _ := do(t, h, http.MethodPost, "/api/v1/custom-word", `{"word": "gopher"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"gopher"}, store.added)
	assert.False(t, engine.IsMisspelled("gopher"))

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/custom-word/gopher", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"gopher"}, store.removed)
	assert.True(t, engine.IsMisspelled("gopher"))
}

func TestCustomWordsWithoutStore(t *testing.T) {
	srv, engine := newTestServer(t, nil)
	rec, _ := do(t, srv.Handler(), http.MethodPost, "/api/v1/custom-word", `{"word": "gopher"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, engine.IsMisspelled("gopher"))
}

func TestCustomWordStoreFailure(t *testing.T) {
	store := &memStore{err: errors.New("connection refused")}
	srv, engine := newTestServer(t, store)
	h := srv.Handler()

	rec, out := do(t, h, http.MethodPost, "/api/v1/custom-word", `{"word": "gopher"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "connection refused", out["error"])
	assert.True(t, engine.IsMisspelled("gopher"))

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/custom-word/hello", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, engine.IsMisspelled("hello"))
}

func TestSetDictionary(t *testing.T) {
	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, "bad.aff"), []byte("SET KLINGON\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(bad, "bad.dic"), []byte("1\nword\n"), 0o644))
	srv, engine := newTestServer(t, nil, bad)
	h := srv.Handler()

	rec, out := do(t, h, http.MethodPut, "/api/v1/dictionary", `{"language": "en-US"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en-US", out["language"])
	assert.Equal(t, "en-US", engine.Language())

	rec, _ = do(t, h, http.MethodPut, "/api/v1/dictionary", `{"language": "xx_XX"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPut, "/api/v1/dictionary", `{"language": "bad"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Equal(t, "en-US", engine.Language(), "failed loads keep the dictionary")
}

func TestListDictionaries(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	_, out := do(t, h, http.MethodGet, "/api/v1/dictionaries", "")
	assert.Equal(t, []any{"en_US"}, out["dictionaries"])

	_, out = do(t, h, http.MethodGet, "/api/v1/dictionaries?path=/nonexistent", "")
	assert.Equal(t, []any{}, out["dictionaries"])
}

func TestRoutesRejectOtherMethods(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/check", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReload(t *testing.T) {
	srv, engine := newTestServer(t, nil)

	require.NoError(t, srv.Reload("de_DE"))
	require.NoError(t, srv.Reload("en_US"))
	assert.Equal(t, "en_US", engine.Language())
}
