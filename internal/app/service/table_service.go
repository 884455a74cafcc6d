package service

import (
	"context"
	"fmt"
	"tienda_api/internal/domain/repository"
)

// tableService is the plain CRUD shared by the catalog and user services.
type tableService struct {
	store *repository.RecordStore
	table repository.Table
}

func (s tableService) List(ctx context.Context) ([]repository.Record, error) {
	rows, err := s.store.ListAll(ctx, s.table)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table.Name(), err)
	}
	return rows, nil
}

func (s tableService) Get(ctx context.Context, id int64) ([]repository.Record, error) {
	rows, err := s.store.GetOne(ctx, s.table, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.table.Name(), err)
	}
	return rows, nil
}

func (s tableService) insert(ctx context.Context, rec repository.Record) ([]repository.Record, error) {
	rows, err := s.store.Insert(ctx, s.table, rec)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", s.table.Name(), err)
	}
	return rows, nil
}

func (s tableService) update(ctx context.Context, rec repository.Record) ([]repository.Record, error) {
	rows, err := s.store.Update(ctx, s.table, rec)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.table.Name(), err)
	}
	return rows, nil
}

func (s tableService) Delete(ctx context.Context, id int64) ([]repository.Record, error) {
	rows, err := s.store.Delete(ctx, s.table, id)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", s.table.Name(), err)
	}
	return rows, nil
}

// fields collects the set values; nil pointers are left out of the record.
type fields repository.Record

func (f fields) set(column string, v any) {
	f[column] = v
}

func (f fields) setString(column string, v *string) {
	if v != nil {
		f[column] = *v
	}
}

func (f fields) setFloat(column string, v *float64) {
	if v != nil {
		f[column] = *v
	}
}

func (f fields) setInt(column string, v *int64) {
	if v != nil {
		f[column] = *v
	}
}
