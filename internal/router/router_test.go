package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-complaint-tracker/config"
	"github.com/oksasatya/go-complaint-tracker/internal/container"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

func routeSet(r *gin.Engine) map[string]bool {
	set := map[string]bool{}
	for _, ri := range r.Routes() {
		set[ri.Method+" "+ri.Path] = true
	}
	return set
}

func newTestContainer(debug bool) *container.Container {
	cfg := &config.Config{DebugMetricsEnabled: debug, AuthRateLimit: 20}
	return &container.Container{
		Infra: container.Infra{
			Config: cfg,
			JWT:    helpers.NewJWTManager("a", "r", 0, 0),
		},
		Cookies: helpers.NewCookie("localhost", false),
	}
}

func TestInitModules_RegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg, newTestContainer(true))
	reg.RegisterAll()

	routes := routeSet(r)
	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/login",
		"POST /api/refresh",
		"POST /api/logout",
		"GET /api/users/details",
		"PATCH /api/users/onboarding-stage",
		"POST /api/complaints",
		"GET /api/complaints",
		"GET /api/complaints/search",
		"PATCH /api/complaints/:id/status",
		"GET /api/complaints/:id/metrics",
		"POST /api/complaints/:id/attachments",
		"GET /api/notifications",
		"GET /api/debug/vars",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestInitModules_DebugDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg, newTestContainer(false))
	reg.RegisterAll()

	assert.False(t, routeSet(r)["GET /api/debug/vars"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg, newTestContainer(false))
	reg.RegisterAll()

	for _, p := range []struct{ method, path string }{
		{http.MethodGet, "/api/complaints"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/users/details"},
		{http.MethodPost, "/api/logout"},
	} {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(p.method, p.path, nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)
	}
}

type pingModule struct{}

func (pingModule) Register(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("mw")) })
}

func TestRegistry_AppliesMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reg := NewRegistry(r)
	reg.Use(func(c *gin.Context) { c.Set("mw", "on"); c.Next() })
	reg.Add(pingModule{})
	reg.RegisterAll()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "on", w.Body.String())
}
