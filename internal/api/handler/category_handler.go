package handler

import (
	"net/http"
	"tienda_api/internal/api/middleware"
	"tienda_api/internal/app/service"
	"tienda_api/internal/common"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

var categoryMessages = messages{
	"id.required":     "El ID es obligatorio",
	"id.min":          "El ID debe ser un número entero positivo",
	"nombre.required": "El nombre es obligatorio",
	"nombre.min":      "El nombre debe tener entre 3 y 100 caracteres",
	"nombre.max":      "El nombre debe tener entre 3 y 100 caracteres",
	"descripcion.max": "La descripción no puede tener más de 500 caracteres",
}

type CategoryHandler struct {
	categoryService *service.CategoryService
	log             logrus.FieldLogger
}

func NewCategoryHandler(cs *service.CategoryService, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{categoryService: cs, log: log}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router, auth *middleware.Auth) {
	r.Group(func(read chi.Router) {
		read.Use(auth.AdminOrUser())
		read.Get("/", h.list)
		read.Get("/{id}", h.get)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(auth.AdminOnly())
		admin.Post("/", h.create)
		admin.Put("/", h.update)
		admin.Delete("/", h.delete)
	})
}

func (h *CategoryHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.categoryService.List(r.Context())
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, items)
}

func (h *CategoryHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	items, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, items)
}

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if err := decodeAndValidate(r, &req, categoryMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.categoryService.Create(r.Context(), req); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusCreated, "Categoria agregada correctamente")
}

func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCategoryRequest
	if err := decodeAndValidate(r, &req, categoryMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.categoryService.Update(r.Context(), req); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, "Categoria actualizada correctamente")
}

func (h *CategoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decodeAndValidate(r, &req, idMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.categoryService.Delete(r.Context(), req.ID); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, "Categoria eliminada correctamente")
}
