package repository

import (
	"context"
	"testing"
	"tienda_api/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const findCredentialQuery = `SELECT id, user_id, username, password, role
	          FROM auth WHERE username = $1`

func TestCredentialRepository_FindByUsername(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewPgCredentialRepository(store)

	mock.ExpectQuery(findCredentialQuery).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "password", "role"}).
			AddRow(int64(1), int64(7), "ana", "$2a$10$hash", "admin"))

	got, err := repo.FindByUsername(context.Background(), "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, &model.Credential{ID: 1, UserID: 7, Username: "ana", HashedPassword: "$2a$10$hash", Role: "admin"}, got)
}

func TestCredentialRepository_FindByUsername_Unknown(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewPgCredentialRepository(store)

	mock.ExpectQuery(findCredentialQuery).
		WithArgs("nadie").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "password", "role"}))

	got, err := repo.FindByUsername(context.Background(), "nadie")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCredentialRepository_Create(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewPgCredentialRepository(store)

	mock.ExpectQuery(`INSERT INTO "auth" ("password", "role", "user_id", "username") VALUES ($1, $2, $3, $4) RETURNING *`).
		WithArgs("hash", model.RoleUser, int64(7), "ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "password", "role"}).
			AddRow(int64(3), int64(7), "ana", "hash", model.RoleUser))

	got, err := repo.Create(context.Background(), &model.Credential{
		UserID: 7, Username: "ana", HashedPassword: "hash", Role: model.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
