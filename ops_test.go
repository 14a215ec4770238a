package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClientHasher(t *testing.T) {
	a, err := newClientHasher()
	require.NoError(t, err)
	b, err := newClientHasher()
	require.NoError(t, err)

	h := a.hash("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, a.hash("203.0.113.7"))
	assert.NotEqual(t, h, a.hash("203.0.113.8"))
	assert.NotEqual(t, h, b.hash("203.0.113.7"), "salts differ per process")
}

func observedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	hasher, err := newClientHasher()
	require.NoError(t, err)

	r := gin.New()
	r.Use(requestLogger(zap.New(core), hasher))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", ok)
	r.GET("/static/live.js", ok)
	return r, logs
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		dnt        bool
		logged     bool
		withClient bool
	}{
		{name: "page", path: "/", logged: true, withClient: true},
		{name: "do not track", path: "/", dnt: true, logged: true},
		{name: "static asset", path: "/static/live.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, logs := observedRouter(t)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.dnt {
				req.Header.Set("DNT", "1")
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			if !tt.logged {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			fields := logs.All()[0].ContextMap()
			assert.Equal(t, tt.path, fields["path"])
			assert.EqualValues(t, http.StatusOK, fields["status"])
			_, hasClient := fields["client"]
			assert.Equal(t, tt.withClient, hasClient)
		})
	}
}
