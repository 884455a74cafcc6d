package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productJoinColumns = []string{
	"id", "nombre", "descripcion", "precio", "url_imagen", "created_at", "updated_at",
	"categoria_id", "categoria_nombre", "categoria_descripcion",
}

func TestProductService_ListWithCategory(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(f.store)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	f.mock.ExpectQuery(listProductsQuery).
		WillReturnRows(sqlmock.NewRows(productJoinColumns).
			AddRow(int64(10), "Audífonos", "Inalámbricos con estuche", "199.90", nil, created, created,
				int64(1), "Audio", "Sonido y accesorios"))

	products, err := svc.ListWithCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, "199.90", p.Precio)
	assert.Nil(t, p.URLImagen)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, int64(1), p.Categoria.ID)
	assert.Equal(t, "Audio", p.Categoria.Nombre)
	require.NotNil(t, p.Categoria.Descripcion)
	assert.Equal(t, "Sonido y accesorios", *p.Categoria.Descripcion)
}

func TestProductService_ListWithCategory_Empty(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(f.store)

	f.mock.ExpectQuery(listProductsQuery).WillReturnRows(sqlmock.NewRows(productJoinColumns))

	products, err := svc.ListWithCategory(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductService_Create(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(f.store)

	f.mock.ExpectQuery(`INSERT INTO "productos" ("categoria_id", "descripcion", "nombre", "precio") VALUES ($1, $2, $3, $4) RETURNING *`).
		WithArgs(int64(1), "Inalámbricos con estuche", "Audífonos", 199.9).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))

	rows, err := svc.Create(context.Background(), CreateProductRequest{
		Nombre: "Audífonos", Descripcion: "Inalámbricos con estuche", Precio: 199.9, CategoriaID: 1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
