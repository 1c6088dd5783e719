package webserver

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

// SessionOperator returns the operator username stored in the cookie
// session, or "" when no authenticated session exists.
func SessionOperator(c echo.Context) string {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return ""
	}
	if v, ok := sess.Values["username"].(string); ok {
		return v
	}
	return ""
}

// TokenOperator returns the operator username from a validated bearer token.
func TokenOperator(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	return cast.ToString(claims["username"])
}

// Operator resolves the acting admin from session or token.
func Operator(c echo.Context) string {
	if name := SessionOperator(c); name != "" {
		return name
	}
	if name := TokenOperator(c); name != "" {
		return name
	}
	return "unknown"
}
