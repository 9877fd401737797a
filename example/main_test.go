package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := newServer(NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexListsTags(t *testing.T) {
	rec := get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "<title>Tags</title>")
	require.Contains(t, body, `href="/tag/go"`)
	require.Contains(t, body, `href="/tag/docs"`)
}

func TestTagDetail(t *testing.T) {
	rec := get(t, "/tag/go")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "#go")
	require.Contains(t, body, "Effective Go")
	require.NotContains(t, body, "MDN Web Docs")
	require.Contains(t, body, `class="back" href="/"`)
}

func TestUnknownTagIsEmpty(t *testing.T) {
	rec := get(t, "/tag/rust")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No items")
}

func TestUnknownPath(t *testing.T) {
	rec := get(t, "/nope/at/all")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Nothing at /nope/at/all")
}

func TestStore(t *testing.T) {
	s := NewStore()
	s.Add("Zed", "https://example.com", "go")

	var names []string
	for _, tag := range s.Tags() {
		names = append(names, tag.Name)
	}
	require.Equal(t, []string{"docs", "go", "html", "languages"}, names)

	items := s.Items("go")
	require.Len(t, items, 4)
	require.Equal(t, "Effective Go", items[0].Title)
	require.Equal(t, "Zed", items[2].Title)
}
