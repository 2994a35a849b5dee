package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cashflow/payments-api/internal/core/validation"
	"github.com/cashflow/payments-api/internal/port/input"
	"github.com/cashflow/payments-api/internal/port/output"
)

// AuthHandler authenticates users and hands out tokens. Every failure mode
// (missing fields, unknown user, wrong password) answers 401 with the same
// payload, so the response cannot be used to enumerate usernames.
type AuthHandler struct {
	userService input.UserService
	tokenIssuer output.TokenIssuer
	logger      *zap.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(userService input.UserService, tokenIssuer output.TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// AuthenticateRequest is the credential payload
type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticate handles POST /v1/authenticate
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req AuthenticateRequest
	if err := c.Bind(&req); err != nil {
		return unauthorized(c, "Missing username and password")
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return unauthorized(c, "Missing username and password")
	}

	ctx := c.Request().Context()

	switch h.userService.ValidateUserPassword(ctx, req.Username, req.Password).(type) {
	case input.ValidateUserPasswordSuccess:
	case input.UserPasswordInvalidError:
		return unauthorized(c, "Wrong username or password")
	default:
		return internalError(c)
	}

	res, ok := h.userService.GetUser(ctx, req.Username).(input.GetUserSuccess)
	if !ok {
		// The password just verified, so the user must exist; anything else
		// is a storage fault.
		return internalError(c)
	}

	tokenString, expiresIn, err := h.tokenIssuer.Issue(res.User.ID.String())
	if err != nil {
		h.logger.Error("issuing token failed", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(http.StatusOK, AuthenticateResponse{
		Token:     tokenString,
		ExpiresIn: int64(expiresIn.Seconds()),
	})
}

func unauthorized(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    ErrCodeValidation,
		Message: msgValidation,
		Details: []validation.FieldError{{Message: detail, Path: ""}},
	})
}
