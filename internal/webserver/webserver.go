package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/handcraftlab/atelier/internal/app"
	"github.com/handcraftlab/atelier/pkg/metrics"
)

const (
	// SessionName is the cookie session established by admin login.
	SessionName = "atelier_session"
	// TokenCookieName mirrors the bearer token for browser clients.
	TokenCookieName = "atelier_token"

	appContextKey = "atelier_app"
)

type WebServer struct {
	root *echo.Echo
	app  *app.Application
	pub  *echo.Group
	api  *echo.Group
}

var server *WebServer

// Init builds the echo server: public routes register through PubGET/PubPOST,
// session-or-JWT protected routes through ApiGET/ApiPOST/ApiPUT/ApiDELETE.
func Init(application *app.Application) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJsoniterSerializer()
	e.Validator = NewValidator()

	secret := []byte(application.Config().Web.Secret)

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(session.Middleware(sessions.NewCookieStore(secret)))
	e.Use(appContextMiddleware(application))
	e.Use(requestLogMiddleware())
	e.Use(metricsMiddleware())

	pub := e.Group("/api")
	api := e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey:  secret,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + TokenCookieName,
		Skipper: func(c echo.Context) bool {
			// A valid cookie session bypasses the JWT check.
			return SessionOperator(c) != ""
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
		},
	}))

	server = &WebServer{root: e, app: application, pub: pub, api: api}
}

// Listen starts the HTTP listener and blocks until shutdown.
func Listen() error {
	cfg := server.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully.
func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.root.Shutdown(ctx)
}

// Echo exposes the router for tests.
func Echo() *echo.Echo {
	return server.root
}

// GetApp retrieves the application context injected per request.
func GetApp(c echo.Context) *app.Application {
	return c.Get(appContextKey).(*app.Application)
}

func appContextMiddleware(application *app.Application) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, application)
			return next(c)
		}
	}
}

func requestLogMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)))
			return err
		}
	}
}

func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			metrics.RecordAPIRequest(status, float64(time.Since(start).Microseconds())/1000.0)
			return err
		}
	}
}

// PubGET registers an unauthenticated route.
func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

// PubPOST registers an unauthenticated route.
func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// ApiGET registers an authenticated route.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers an authenticated route.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers an authenticated route.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// ApiDELETE registers an authenticated route.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
