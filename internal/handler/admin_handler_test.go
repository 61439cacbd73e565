package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_FlushCache(t *testing.T) {
	service := newTestCatalog(t)
	handler := NewAdminHandler(service, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/cache/flush", nil)
	rec := httptest.NewRecorder()
	handler.FlushCache(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "flushed"}`, rec.Body.String())
}

func TestAdminHandler_FlushCache_MethodNotAllowed(t *testing.T) {
	handler := NewAdminHandler(newTestCatalog(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/cache/flush", nil)
	rec := httptest.NewRecorder()
	handler.FlushCache(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
