package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChecker mocks a HealthChecker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		store := &MockChecker{}
		store.On("CheckHealth", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		HandleReadyz(map[string]HealthChecker{"credentials": store}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		store.AssertExpectations(t)
	})

	t.Run("failing check", func(t *testing.T) {
		store := &MockChecker{}
		store.On("CheckHealth", mock.Anything).Return(assert.AnError)

		w := httptest.NewRecorder()
		HandleReadyz(map[string]HealthChecker{"credentials": store}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "credentials check failed")
		store.AssertExpectations(t)
	})

	t.Run("no checks", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleReadyz(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("func adapter", func(t *testing.T) {
		var called bool
		check := HealthCheckFunc(func(context.Context) error { called = true; return nil })

		w := httptest.NewRecorder()
		HandleReadyz(map[string]HealthChecker{"ledger": check}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion("").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"dev"`)
}
