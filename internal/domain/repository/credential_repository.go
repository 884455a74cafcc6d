package repository

import (
	"context"
	"fmt"
	"tienda_api/internal/domain/model"
)

type CredentialRepository interface {
	// FindByUsername returns nil, nil when no credential has that exact username.
	FindByUsername(ctx context.Context, username string) (*model.Credential, error)
	Create(ctx context.Context, c *model.Credential) (*model.Credential, error)
}

type pgCredentialRepository struct {
	store *RecordStore
}

func NewPgCredentialRepository(store *RecordStore) CredentialRepository {
	return &pgCredentialRepository{store: store}
}

func (r *pgCredentialRepository) FindByUsername(ctx context.Context, username string) (*model.Credential, error) {
	query := `SELECT id, user_id, username, password, role
	          FROM auth WHERE username = $1`
	rows, err := r.store.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("pgCredentialRepository.FindByUsername: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return credentialFromRecord(rows[0]), nil
}

func (r *pgCredentialRepository) Create(ctx context.Context, c *model.Credential) (*model.Credential, error) {
	rows, err := r.store.Insert(ctx, TableAuth, Record{
		"user_id":  c.UserID,
		"username": c.Username,
		"password": c.HashedPassword,
		"role":     c.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("pgCredentialRepository.Create: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("pgCredentialRepository.Create: no row returned")
	}
	return credentialFromRecord(rows[0]), nil
}

func credentialFromRecord(rec Record) *model.Credential {
	c := &model.Credential{}
	c.ID, _ = rec.Int64("id")
	c.UserID, _ = rec.Int64("user_id")
	c.Username, _ = rec.String("username")
	c.HashedPassword, _ = rec.String("password")
	c.Role, _ = rec.String("role")
	return c
}
