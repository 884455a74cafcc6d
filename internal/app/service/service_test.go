package service

import (
	"testing"
	"tienda_api/internal/common/security"
	"tienda_api/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const findCredentialQuery = `SELECT id, user_id, username, password, role
	          FROM auth WHERE username = $1`

type fixture struct {
	mock   sqlmock.Sqlmock
	store  *repository.RecordStore
	tokens *security.TokenService
	auth   *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log, _ := logtest.NewNullLogger()
	store := repository.NewRecordStore(db, log)
	tokens := security.NewTokenService([]byte("test-secret"))
	return &fixture{
		mock:   mock,
		store:  store,
		tokens: tokens,
		auth:   NewAuthService(store, tokens, repository.NewNoopTokenDenylist(), log),
	}
}

func credentialRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "username", "password", "role"})
}
