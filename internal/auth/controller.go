package auth

import (
	"net/http"

	"go.uber.org/zap"

	"couriertrack/internal/commons"
	"couriertrack/internal/dto"
)

type LoginController struct {
	provider CredentialProvider
	logger   *zap.Logger
}

func NewLoginController(provider CredentialProvider, logger *zap.Logger) *LoginController {
	return &LoginController{
		provider: provider,
		logger:   logger,
	}
}

func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.LoginRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	principal, err := c.provider.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, "Login successful", dto.LoginResponse{
		Username: principal.Username,
		Role:     principal.Role,
	}, c.logger)
}
