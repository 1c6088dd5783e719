package storefront

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/handcraftlab/atelier/internal/mailer"
	"github.com/handcraftlab/atelier/internal/webserver"
)

type contactPayload struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
}

func registerContactRoutes() {
	webserver.PubPOST("/contact", submitContact)
}

func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse contact payload", nil)
	}
	if err := c.Validate(&payload); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "name, email and message are required", nil)
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	}

	app := GetApp(c)
	if !app.Settings().GetBool("contact", "notify") {
		zap.L().Info("contact notification suppressed by settings",
			zap.String("from", payload.Email))
		return ok(c, map[string]interface{}{"status": "received"})
	}

	err := app.Mailer().SendContactMessage(mailer.ContactMessage{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	if err != nil {
		zap.L().Error("contact mail delivery failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "MAIL_ERROR", "Failed to send message", nil)
	}
	return ok(c, map[string]interface{}{"status": "sent"})
}
