package service

import (
	"context"
	"tienda_api/internal/domain/repository"
)

type CategoryService struct {
	tableService
}

func NewCategoryService(store *repository.RecordStore) *CategoryService {
	return &CategoryService{tableService{store: store, table: repository.TableCategorias}}
}

type CreateCategoryRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=3,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	ID          int64   `json:"id" validate:"required,min=0"`
	Nombre      string  `json:"nombre" validate:"required,min=3,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=500"`
}

func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) ([]repository.Record, error) {
	f := fields{}
	f.set("nombre", req.Nombre)
	f.setString("descripcion", req.Descripcion)
	return s.insert(ctx, repository.Record(f))
}

func (s *CategoryService) Update(ctx context.Context, req UpdateCategoryRequest) ([]repository.Record, error) {
	f := fields{}
	f.set("id", req.ID)
	f.set("nombre", req.Nombre)
	f.setString("descripcion", req.Descripcion)
	return s.update(ctx, repository.Record(f))
}
