package model

import "time"

type Category struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

// Product is the catalog projection: the category is nested instead of a bare categoria_id.
type Product struct {
	ID          int64     `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion"`
	Precio      string    `json:"precio"`
	URLImagen   *string   `json:"url_imagen"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Categoria   Category  `json:"categoria"`
}
