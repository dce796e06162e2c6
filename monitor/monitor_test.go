package monitor

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTail(t *testing.T) {
	data := []byte("one\ntwo\nthree\n")

	assert.Equal(t, "three\n", string(tail(data, 1)))
	assert.Equal(t, "two\nthree\n", string(tail(data, 2)))
	assert.Equal(t, "one\ntwo\nthree\n", string(tail(data, 10)))
	assert.Empty(t, tail(nil, 3))
}

func TestLogsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.MkdirAll(filepath.Dir(config.LogFilePath()), 0o755))
	require.NoError(t, os.WriteFile(config.LogFilePath(), []byte("a\nb\nc\n"), 0o644))

	prev := config.Cfg
	config.Cfg.LogsToken = "s3cret"
	t.Cleanup(func() { config.Cfg = prev })

	router := gin.New()
	RegisterMonitorRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?token=wrong", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?token=s3cret&lines=2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b\nc\n", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/monitor?token=s3cret", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `const token = "s3cret";`)
}

func TestLogsRouteDisabledWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := config.Cfg
	config.Cfg.LogsToken = ""
	t.Cleanup(func() { config.Cfg = prev })

	router := gin.New()
	RegisterMonitorRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?token=", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMonitorPageAllowsInlineAssets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := config.Cfg
	config.Cfg.LogsToken = "tok"
	t.Cleanup(func() { config.Cfg = prev })

	router := gin.New()
	router.Use(middleware.SecurityHeaders())
	RegisterMonitorRoutes(router)
	router.GET("/other", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/monitor?token=tok", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<script>")
	assert.Equal(t, monitorCSP, w.Header().Get("Content-Security-Policy"))
	assert.Len(t, w.Header().Values("Content-Security-Policy"), 1)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
}
