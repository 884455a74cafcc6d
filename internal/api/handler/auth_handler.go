package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"tienda_api/internal/api/middleware"
	"tienda_api/internal/app/service"
	"tienda_api/internal/common"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService *service.AuthService
	log         logrus.FieldLogger
}

func NewAuthHandler(authService *service.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router, auth *middleware.Auth) {
	r.Post("/login", h.login)

	// Logout needs somewhere to remember revoked tokens.
	if h.authService.LogoutEnabled() {
		r.With(auth.RequireToken()).Post("/logout", h.logout)
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithErr(w, r, h.log, common.NewValidationError("Username y password son requeridos"))
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, resp)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithErr(w, r, h.log, fmt.Errorf("%w: claims missing from authenticated request", common.ErrInternalServer))
		return
	}
	if err := h.authService.Logout(r.Context(), claims); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, "Sesión cerrada correctamente")
}
