package repository

import (
	"slices"

	"github.com/jackc/pgx/v5"
)

// Table describes one of the known tables and the columns callers may write.
// The constructor is unexported: the set of tables is closed.
type Table struct {
	name    string
	columns []string
}

var (
	TableUsuarios   = newTable("usuarios", "nombre", "apellidos", "email")
	TableCategorias = newTable("categorias", "nombre", "descripcion")
	TableProductos  = newTable("productos", "nombre", "descripcion", "precio", "url_imagen", "categoria_id")
	TableAuth       = newTable("auth", "user_id", "username", "password", "role")
)

func newTable(name string, columns ...string) Table {
	cols := slices.Clone(columns)
	slices.Sort(cols)
	return Table{name: name, columns: cols}
}

func (t Table) Name() string { return t.name }

func (t Table) valid() bool { return t.name != "" }

func (t Table) hasColumn(column string) bool {
	_, found := slices.BinarySearch(t.columns, column)
	return found
}

func (t Table) ident() string {
	return pgx.Identifier{t.name}.Sanitize()
}

func quoteColumn(column string) string {
	return pgx.Identifier{column}.Sanitize()
}
