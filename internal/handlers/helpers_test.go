package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
)

func TestParseDate(t *testing.T) {
	for _, raw := range []string{"2024-03-29", "03/29/2024", "03/29/24", " 2024-03-29 "} {
		d, err := parseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "2024-03-29", d.String(), raw)
	}

	_, err := parseDate("29.03.2024")
	assert.ErrorIs(t, err, errInvalidDate)

	_, err = parseDate("")
	assert.ErrorIs(t, err, errInvalidDate)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := parseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseOptionalDate("1920-01-02")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "1920-01-02", d.String())

	_, err = parseOptionalDate("yesterday")
	assert.Error(t, err)
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/", safeNext(""))
	assert.Equal(t, "/catalog/mybooks", safeNext("/catalog/mybooks"))
	assert.Equal(t, "/", safeNext("https://evil.example.com"))
	assert.Equal(t, "/", safeNext("//evil.example.com"))
	assert.Equal(t, "/", safeNext(`/\evil.example.com`))
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		err      error
		code     int
		location string
	}{
		{catalog.ErrNotFound, http.StatusNotFound, ""},
		{catalog.ErrForbidden, http.StatusForbidden, ""},
		{catalog.ErrUnauthorized, http.StatusSeeOther, "/login?next=%2Fcatalog%2Fmybooks"},
		{assert.AnError, http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		handleError(w, httptest.NewRequest(http.MethodGet, "/catalog/mybooks", nil), tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.Equal(t, tc.location, w.Header().Get("Location"))
	}
}

func TestNewRenderer_ParsesAllPages(t *testing.T) {
	rd, err := NewRenderer()
	require.NoError(t, err)

	for _, page := range pageFiles {
		assert.Contains(t, rd.pages, page)
	}
}

func TestRender_UnknownPage(t *testing.T) {
	rd, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	rd.Render(w, http.StatusOK, "missing.html", TemplateData{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
