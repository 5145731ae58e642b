package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/httpapi/presenter"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	users  userService
	logger logging.Logger
}

func NewUserHandler(users userService, logger logging.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("module", "http_users")}
}

type registerResponse struct {
	ID     *uuid.UUID            `json:"id,omitempty"`
	Result models.RegisterResult `json:"result"`
}

type changeEmailBody struct {
	UserID               string `json:"user_id"`
	Password             string `json:"password"`
	NewEmail             string `json:"new_email"`
	NewEmailConfirmation string `json:"new_email_confirmation"`
}

type changePasswordBody struct {
	UserID                  string `json:"user_id"`
	OldPassword             string `json:"old_password"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

// parseUserID maps anything that is not a UUID to uuid.Nil, which
// validation rejects with the usual field message.
func parseUserID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Register handles POST /api/users.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	resp, err := h.users.Register(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}

	if resp.Result != models.Registered {
		return presenter.JSON(c, http.StatusInternalServerError, registerResponse{Result: resp.Result})
	}
	return presenter.JSON(c, http.StatusCreated, registerResponse{ID: &resp.ID, Result: resp.Result})
}

// Authenticate handles GET /api/users with username and password in the
// query, and POST /api/users/authenticate with a JSON body.
func (h *UserHandler) Authenticate(c *fiber.Ctx) error {
	var req models.AuthenticateRequest
	if c.Method() == fiber.MethodGet {
		// query values alias fiber's buffers
		req.Username = strings.Clone(c.Query("username"))
		req.Password = strings.Clone(c.Query("password"))
	} else if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	user, err := h.users.Authenticate(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, user)
}

// ChangeEmail handles PUT /api/users/email.
func (h *UserHandler) ChangeEmail(c *fiber.Ctx) error {
	var body changeEmailBody
	if err := c.BodyParser(&body); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	resp, err := h.users.ChangeEmail(c.UserContext(), models.ChangeEmailRequest{
		UserID:               parseUserID(body.UserID),
		Password:             body.Password,
		NewEmail:             body.NewEmail,
		NewEmailConfirmation: body.NewEmailConfirmation,
	})
	if err != nil {
		return h.fail(c, err)
	}

	status := http.StatusOK
	if resp.Result == models.ChangeEmailInternalServiceError {
		status = http.StatusInternalServerError
	}
	return presenter.JSON(c, status, resp)
}

// ChangePassword handles PUT /api/users/password.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var body changePasswordBody
	if err := c.BodyParser(&body); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	resp, err := h.users.ChangePassword(c.UserContext(), models.ChangePasswordRequest{
		UserID:                  parseUserID(body.UserID),
		OldPassword:             body.OldPassword,
		NewPassword:             body.NewPassword,
		NewPasswordConfirmation: body.NewPasswordConfirmation,
	})
	if err != nil {
		return h.fail(c, err)
	}

	status := http.StatusOK
	if resp.Result == models.ChangePasswordInternalServiceError {
		status = http.StatusInternalServerError
	}
	return presenter.JSON(c, status, resp)
}

func (h *UserHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return presenter.Error(c, presenter.StatusClientClosedRequest, err.Error())
	}

	ae, ok := apperrors.As(err)
	if !ok {
		ae = apperrors.Internal(err)
	}
	if ae.Code == apperrors.CodeInternal {
		h.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	return presenter.AppError(c, ae)
}
