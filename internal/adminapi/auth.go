package adminapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
	"github.com/handcraftlab/atelier/pkg/common"
)

const tokenTTL = 24 * time.Hour

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/admin/login", login)
	webserver.ApiPOST("/admin/logout", logout)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login payload", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	db := GetDB(c)
	var operator domain.SysOpr
	err := db.Where("username = ? and status = ?", payload.Username, common.ENABLED).First(&operator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operator", err.Error())
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if hashed != operator.Password {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	secret := []byte(GetApp(c).Config().Web.Secret)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": operator.Username,
		"level":    operator.Level,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}

	sess, _ := session.Get(webserver.SessionName, c)
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
	}
	sess.Values["username"] = operator.Username
	sess.Values["level"] = operator.Level
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to save session", err.Error())
	}

	c.SetCookie(&http.Cookie{
		Name:     webserver.TokenCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
	})

	db.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", time.Now())

	logOperation(c, "auth.login", "operator logged in")
	return ok(c, map[string]interface{}{
		"token":    signed,
		"username": operator.Username,
		"realname": operator.Realname,
		"level":    operator.Level,
	})
}

func logout(c echo.Context) error {
	sess, _ := session.Get(webserver.SessionName, c)
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
	sess.Values = map[interface{}]interface{}{}
	_ = sess.Save(c.Request(), c.Response())

	c.SetCookie(&http.Cookie{
		Name:   webserver.TokenCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return ok(c, map[string]interface{}{"status": "logged_out"})
}
