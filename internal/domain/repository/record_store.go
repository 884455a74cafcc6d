package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"tienda_api/internal/common"
	"tienda_api/internal/platform/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// RecordStore runs table-scoped CRUD statements. Identifiers come from Table
// descriptors and are quoted; values are always bound as parameters.
type RecordStore struct {
	conn database.DBTX
	db   *sql.DB // nil when bound to a transaction
	log  logrus.FieldLogger
}

func NewRecordStore(db *sql.DB, log logrus.FieldLogger) *RecordStore {
	return &RecordStore{conn: db, db: db, log: log}
}

func (s *RecordStore) ListAll(ctx context.Context, t Table) ([]Record, error) {
	if !t.valid() {
		return nil, errUnknownTable
	}
	query := "SELECT * FROM " + t.ident()
	return s.run(ctx, "ListAll", t.name, query)
}

// GetOne returns the rows whose id matches: zero or one.
func (s *RecordStore) GetOne(ctx context.Context, t Table, id int64) ([]Record, error) {
	if !t.valid() {
		return nil, errUnknownTable
	}
	query := "SELECT * FROM " + t.ident() + " WHERE id = $1"
	return s.run(ctx, "GetOne", t.name, query, id)
}

// Insert adds rec and returns the stored row, generated columns included.
func (s *RecordStore) Insert(ctx context.Context, t Table, rec Record) ([]Record, error) {
	if !t.valid() {
		return nil, errUnknownTable
	}
	cols, err := columnsOf(t, rec, "")
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, common.NewValidationError("No hay datos para insertar")
	}

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = quoteColumn(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = rec[c]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		t.ident(), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	return s.run(ctx, "Insert", t.name, query, args...)
}

// Update sets every key of rec except "id" on the row with that id. A missing
// row yields an empty result, not an error.
func (s *RecordStore) Update(ctx context.Context, t Table, rec Record) ([]Record, error) {
	if !t.valid() {
		return nil, errUnknownTable
	}
	id, ok := rec["id"]
	if !ok || id == nil {
		return nil, common.NewValidationError("El ID es obligatorio")
	}
	cols, err := columnsOf(t, rec, "id")
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, common.NewValidationError("No hay campos para actualizar")
	}

	set := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		set[i] = fmt.Sprintf("%s = $%d", quoteColumn(c), i+1)
		args = append(args, rec[c])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		t.ident(), strings.Join(set, ", "), len(args))
	return s.run(ctx, "Update", t.name, query, args...)
}

// Delete removes the row with the given id and returns it, if it existed.
func (s *RecordStore) Delete(ctx context.Context, t Table, id int64) ([]Record, error) {
	if !t.valid() {
		return nil, errUnknownTable
	}
	query := "DELETE FROM " + t.ident() + " WHERE id = $1 RETURNING *"
	return s.run(ctx, "Delete", t.name, query, id)
}

// Query runs a hand-written parameterized statement (joins, lookups).
func (s *RecordStore) Query(ctx context.Context, query string, args ...any) ([]Record, error) {
	return s.run(ctx, "Query", "", query, args...)
}

// WithTx runs fn with a store bound to a single transaction. Nested calls reuse
// the outer transaction.
func (s *RecordStore) WithTx(ctx context.Context, fn func(tx *RecordStore) error) error {
	if s.db == nil {
		return fn(s)
	}
	return database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		return fn(&RecordStore{conn: tx, log: s.log})
	})
}

var errUnknownTable = errors.New("repository: unknown table")

func columnsOf(t Table, rec Record, skip string) ([]string, error) {
	cols := make([]string, 0, len(rec))
	var unknown []string
	for c := range rec {
		if c == skip {
			continue
		}
		if !t.hasColumn(c) {
			unknown = append(unknown, fmt.Sprintf("El campo %s no es válido", c))
			continue
		}
		cols = append(cols, c)
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, common.NewValidationError(unknown...)
	}
	slices.Sort(cols)
	return cols, nil
}

func (s *RecordStore) run(ctx context.Context, op, table, query string, args ...any) ([]Record, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("RecordStore.%s(%s): %w", op, table, classify(err))
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("RecordStore.%s(%s): %w", op, table, classify(err))
	}

	s.log.WithFields(logrus.Fields{"op": op, "table": table, "rows": len(records)}).Debug("Statement executed")
	return records, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := []Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(Record, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				rec[c] = string(b)
			} else {
				rec[c] = values[i]
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// classify marks integrity constraint failures (SQLSTATE class 23).
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%w: %w", common.ErrConstraintViolation, err)
	}
	return err
}
