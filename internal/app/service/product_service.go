package service

import (
	"context"
	"fmt"
	"tienda_api/internal/domain/model"
	"tienda_api/internal/domain/repository"
)

type ProductService struct {
	tableService
}

func NewProductService(store *repository.RecordStore) *ProductService {
	return &ProductService{tableService{store: store, table: repository.TableProductos}}
}

type CreateProductRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=3,max=150"`
	Descripcion string  `json:"descripcion" validate:"required,min=10"`
	Precio      float64 `json:"precio" validate:"required,min=1"`
	CategoriaID int64   `json:"categoria_id" validate:"required,min=1"`
	URLImagen   *string `json:"url_imagen" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	ID          int64    `json:"id" validate:"required,min=1"`
	Nombre      *string  `json:"nombre" validate:"omitempty,min=3,max=150"`
	Descripcion *string  `json:"descripcion" validate:"omitempty,min=10"`
	Precio      *float64 `json:"precio" validate:"omitempty,min=1"`
	CategoriaID *int64   `json:"categoria_id" validate:"omitempty,min=1"`
	URLImagen   *string  `json:"url_imagen" validate:"omitempty,url"`
}

const listProductsQuery = `
	SELECT p.id, p.nombre, p.descripcion, p.precio, p.url_imagen, p.created_at, p.updated_at,
	       c.id AS categoria_id, c.nombre AS categoria_nombre, c.descripcion AS categoria_descripcion
	FROM productos p
	JOIN categorias c ON p.categoria_id = c.id
	ORDER BY p.id`

// ListWithCategory returns every product with its category nested.
func (s *ProductService) ListWithCategory(ctx context.Context) ([]model.Product, error) {
	rows, err := s.store.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		p := model.Product{
			Descripcion: row.NullString("descripcion"),
			URLImagen:   row.NullString("url_imagen"),
			CreatedAt:   row.Time("created_at"),
			UpdatedAt:   row.Time("updated_at"),
		}
		p.ID, _ = row.Int64("id")
		p.Nombre, _ = row.String("nombre")
		p.Precio, _ = row.String("precio")
		p.Categoria.ID, _ = row.Int64("categoria_id")
		p.Categoria.Nombre, _ = row.String("categoria_nombre")
		p.Categoria.Descripcion = row.NullString("categoria_descripcion")
		products = append(products, p)
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) ([]repository.Record, error) {
	f := fields{}
	f.set("nombre", req.Nombre)
	f.set("descripcion", req.Descripcion)
	f.set("precio", req.Precio)
	f.set("categoria_id", req.CategoriaID)
	f.setString("url_imagen", req.URLImagen)
	return s.insert(ctx, repository.Record(f))
}

func (s *ProductService) Update(ctx context.Context, req UpdateProductRequest) ([]repository.Record, error) {
	f := fields{}
	f.set("id", req.ID)
	f.setString("nombre", req.Nombre)
	f.setString("descripcion", req.Descripcion)
	f.setFloat("precio", req.Precio)
	f.setInt("categoria_id", req.CategoriaID)
	f.setString("url_imagen", req.URLImagen)
	return s.update(ctx, repository.Record(f))
}
