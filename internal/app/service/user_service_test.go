package service

import (
	"context"
	"testing"
	"tienda_api/internal/common"
	"tienda_api/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertUserQuery       = `INSERT INTO "usuarios" ("apellidos", "email", "nombre") VALUES ($1, $2, $3) RETURNING *`
	insertCredentialQuery = `INSERT INTO "auth" ("password", "role", "user_id", "username") VALUES ($1, $2, $3, $4) RETURNING *`
)

func newUserService(f *fixture) *UserService {
	log, _ := logtest.NewNullLogger()
	return NewUserService(f.store, f.auth, log)
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nombre", "apellidos", "email"})
}

func TestUserService_Create_WithCredential(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(insertUserQuery).
		WithArgs("Diaz", "a@b.com", "Ana").
		WillReturnRows(userRows().AddRow(int64(5), "Ana", "Diaz", "a@b.com"))
	f.mock.ExpectQuery(insertCredentialQuery).
		WithArgs(sqlmock.AnyArg(), model.RoleUser, int64(5), "anadiaz1").
		WillReturnRows(credentialRows().AddRow(int64(1), int64(5), "anadiaz1", "h", model.RoleUser))
	f.mock.ExpectCommit()

	got, err := svc.Create(context.Background(), CreateUserRequest{
		Nombre: "Ana", Apellidos: "Diaz", Email: "a@b.com", Username: "anadiaz1", Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got["email"])
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUserService_Create_WithoutCredential(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(insertUserQuery).
		WillReturnRows(userRows().AddRow(int64(5), "Ana", "Diaz", "a@b.com"))
	f.mock.ExpectCommit()

	_, err := svc.Create(context.Background(), CreateUserRequest{Nombre: "Ana", Apellidos: "Diaz", Email: "a@b.com"})
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUserService_Create_RollsBackWhenCredentialFails(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(insertUserQuery).
		WillReturnRows(userRows().AddRow(int64(5), "Ana", "Diaz", "a@b.com"))
	f.mock.ExpectQuery(insertCredentialQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "auth_username_key"})
	f.mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Nombre: "Ana", Apellidos: "Diaz", Email: "a@b.com", Username: "taken", Password: "Secret123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConstraintViolation)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUserService_Update_OnlySetFields(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	email := "nuevo@b.com"

	f.mock.ExpectQuery(`UPDATE "usuarios" SET "email" = $1 WHERE id = $2 RETURNING *`).
		WithArgs(email, int64(5)).
		WillReturnRows(userRows().AddRow(int64(5), "Ana", "Diaz", email))

	rows, err := svc.Update(context.Background(), UpdateUserRequest{ID: 5, Email: &email})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
