package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func get(t *testing.T, h *HealthHandler, path string) HealthResponse {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck_AllDisabled(t *testing.T) {
	resp := get(t, NewHealthHandler("svc", "1.2.3", HealthDeps{}), "/health")
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "svc", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "disabled", resp.DB)
	assert.Equal(t, "disabled", resp.Redis)
}

func TestHealthCheck_BackendsUp(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	resp := get(t, NewHealthHandler("svc", "v", HealthDeps{DB: fakePinger{}, Redis: client}), "/healthz")
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "up", resp.DB)
	assert.Equal(t, "up", resp.Redis)
}

func TestHealthCheck_Degraded(t *testing.T) {
	resp := get(t, NewHealthHandler("svc", "v", HealthDeps{DB: fakePinger{err: errors.New("down")}}), "/health")
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.DB)
}
