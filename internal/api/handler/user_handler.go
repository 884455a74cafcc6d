package handler

import (
	"encoding/json"
	"net/http"
	"tienda_api/internal/api/middleware"
	"tienda_api/internal/app/service"
	"tienda_api/internal/common"
	"tienda_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

var userMessages = messages{
	"id.required":        "El ID es obligatorio",
	"id.min":             "El ID debe ser un número entero positivo",
	"nombre.required":    "El nombre debe tener entre 2 y 100 caracteres.",
	"nombre.min":         "El nombre debe tener entre 2 y 100 caracteres.",
	"nombre.max":         "El nombre debe tener entre 2 y 100 caracteres.",
	"apellidos.required": "Los apellidos deben tener entre 2 y 100 caracteres.",
	"apellidos.min":      "Los apellidos deben tener entre 2 y 100 caracteres.",
	"apellidos.max":      "Los apellidos deben tener entre 2 y 100 caracteres.",
	"email.required":     "El email debe ser válido.",
	"email.email":        "El email debe ser válido.",
	"email.max":          "El email no debe superar los 150 caracteres.",
	"username.required":  "El nombre de usuario debe tener entre 4 y 100 caracteres.",
	"username.min":       "El nombre de usuario debe tener entre 4 y 100 caracteres.",
	"username.max":       "El nombre de usuario debe tener entre 4 y 100 caracteres.",
	"password.required":  "La contraseña debe tener al menos 8 caracteres.",
	"password.min":       "La contraseña debe tener al menos 8 caracteres.",
	"role.oneof":         "El rol no es válido",
}

type UserHandler struct {
	userService *service.UserService
	log         logrus.FieldLogger
}

func NewUserHandler(us *service.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{userService: us, log: log}
}

func (h *UserHandler) RegisterRoutes(r chi.Router, auth *middleware.Auth) {
	r.Post("/register", h.register)

	r.Group(func(admin chi.Router) {
		admin.Use(auth.AdminOnly())
		admin.Get("/", h.list)
		admin.Get("/{id}", h.get)
		admin.Post("/", h.create)
		admin.Put("/", h.update)
		admin.Delete("/", h.delete)
	})
}

// register is the public signup. It refuses any role but user before anything
// touches the database.
func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithErr(w, r, h.log, common.NewValidationError("El cuerpo de la solicitud no es válido"))
		return
	}
	if req.Role != "" && req.Role != model.RoleUser {
		h.log.WithFields(logrus.Fields{"username": req.Username, "role": req.Role}).Warn("Registration with elevated role refused")
		common.RespondWithError(w, http.StatusForbidden, common.PublicMessage(common.ErrForbidden))
		return
	}
	if err := validateStruct(&req, userMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}

	_, err := h.userService.Create(r.Context(), service.CreateUserRequest{
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		Role:      model.RoleUser,
	})
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusCreated, "Usuario registrado correctamente")
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.userService.List(r.Context())
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, items)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	items, err := h.userService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, items)
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := decodeAndValidate(r, &req, userMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.userService.Create(r.Context(), req); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusCreated, "Usuario agregado correctamente")
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := decodeAndValidate(r, &req, userMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.userService.Update(r.Context(), req); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, "Usuario actualizado correctamente")
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decodeAndValidate(r, &req, idMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.userService.Delete(r.Context(), req.ID); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, "Usuario eliminado correctamente")
}
