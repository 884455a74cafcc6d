package handler

import (
	"net/http"
	"tienda_api/internal/api/middleware"
	"tienda_api/internal/app/service"
	"tienda_api/internal/common"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

var productMessages = messages{
	"id.required":           "El ID es obligatorio",
	"id.min":                "El ID debe ser un número entero positivo",
	"nombre.required":       "El nombre debe tener entre 3 y 150 caracteres.",
	"nombre.min":            "El nombre debe tener entre 3 y 150 caracteres.",
	"nombre.max":            "El nombre debe tener entre 3 y 150 caracteres.",
	"descripcion.required":  "La descripción debe tener al menos 10 caracteres.",
	"descripcion.min":       "La descripción debe tener al menos 10 caracteres.",
	"precio.required":       "El precio debe ser un número positivo.",
	"precio.min":            "El precio debe ser un número positivo.",
	"categoria_id.required": "La categoría debe ser un ID numérico válido mayor a 0.",
	"categoria_id.min":      "La categoría debe ser un ID numérico válido mayor a 0.",
	"url_imagen.url":        "La URL de la imagen debe ser una URL válida.",
}

type ProductHandler struct {
	productService *service.ProductService
	log            logrus.FieldLogger
}

func NewProductHandler(ps *service.ProductService, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{productService: ps, log: log}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router, auth *middleware.Auth) {
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

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListWithCategory(r.Context())
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, products)
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	items, err := h.productService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, items)
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductRequest
	if err := decodeAndValidate(r, &req, productMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.productService.Create(r.Context(), req); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusCreated, "Producto agregado correctamente")
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProductRequest
	if err := decodeAndValidate(r, &req, productMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.productService.Update(r.Context(), req); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, "Producto actualizado correctamente")
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decodeAndValidate(r, &req, idMessages); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	if _, err := h.productService.Delete(r.Context(), req.ID); err != nil {
		common.RespondWithErr(w, r, h.log, err)
		return
	}
	common.RespondWithSuccess(w, http.StatusOK, "Producto eliminado correctamente")
}
