package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		target string
		want   string
	}{
		{"header", "Bearer abc", "/", "abc"},
		{"scheme is case-insensitive", "bearer abc", "/", "abc"},
		{"other scheme", "Basic abc", "/?token=q", ""},
		{"query fallback", "", "/?token=q", "q"},
		{"none", "", "/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, bearerToken(r))
		})
	}
}

func TestGetIntQueryParam(t *testing.T) {
	w := httptest.NewRecorder()
	n, ok := GetIntQueryParam(w, httptest.NewRequest(http.MethodGet, "/", nil), "limit", 7)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = GetIntQueryParam(w, httptest.NewRequest(http.MethodGet, "/?limit=3", nil), "limit", 7)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"-1", "ten"} {
		w := httptest.NewRecorder()
		_, ok := GetIntQueryParam(w, httptest.NewRequest(http.MethodGet, "/?limit="+bad, nil), "limit", 7)
		assert.False(t, ok, bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
	}
}

func TestDecodeAndValidateRequest(t *testing.T) {
	t.Run("empty body is an empty object", func(t *testing.T) {
		var req PackRequest
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		require.NoError(t, DecodeAndValidateRequest(r, w, &req, "open pack"))
		assert.Empty(t, req.PackType)
	})

	t.Run("malformed json", func(t *testing.T) {
		var req PackRequest
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))

		assert.Error(t, DecodeAndValidateRequest(r, w, &req, "open pack"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		var req SendMessageRequest
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":""}`))

		assert.Error(t, DecodeAndValidateRequest(r, w, &req, "send message"))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, ErrMsgInvalidRequestSummary, body.Error)
		assert.NotEmpty(t, body.Fields)
	})
}
