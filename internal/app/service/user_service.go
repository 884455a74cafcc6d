package service

import (
	"context"
	"errors"
	"fmt"
	"tienda_api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	tableService
	auth *AuthService
	log  logrus.FieldLogger
}

func NewUserService(store *repository.RecordStore, auth *AuthService, log logrus.FieldLogger) *UserService {
	return &UserService{
		tableService: tableService{store: store, table: repository.TableUsuarios},
		auth:         auth,
		log:          log,
	}
}

// CreateUserRequest is a user row plus optional credential fields.
type CreateUserRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=2,max=100"`
	Apellidos string `json:"apellidos" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email,max=150"`
	Username  string `json:"username" validate:"omitempty,min=4,max=100"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=admin user"`
}

// RegisterUserRequest is the self-service signup: credentials are mandatory.
type RegisterUserRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=2,max=100"`
	Apellidos string `json:"apellidos" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email,max=150"`
	Username  string `json:"username" validate:"required,min=4,max=100"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role"`
}

type UpdateUserRequest struct {
	ID        int64   `json:"id" validate:"required,min=1"`
	Nombre    *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Apellidos *string `json:"apellidos" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=150"`
}

// Create inserts the user and, when a username and password are given, its
// credential. Both rows are written in one transaction.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (repository.Record, error) {
	var created repository.Record
	err := s.store.WithTx(ctx, func(tx *repository.RecordStore) error {
		rows, err := tx.Insert(ctx, repository.TableUsuarios, repository.Record{
			"nombre":    req.Nombre,
			"apellidos": req.Apellidos,
			"email":     req.Email,
		})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return errors.New("no row returned")
		}
		created = rows[0]

		if req.Username == "" || req.Password == "" {
			return nil
		}
		userID, ok := created.Int64("id")
		if !ok {
			return errors.New("inserted user has no id")
		}
		_, err = s.auth.Bind(tx).Register(ctx, RegisterRequest{
			UserID:   userID,
			Username: req.Username,
			Password: req.Password,
			Role:     req.Role,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("UserService.Create: %w", err)
	}

	s.log.WithField("email", req.Email).Info("User created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, req UpdateUserRequest) ([]repository.Record, error) {
	f := fields{}
	f.set("id", req.ID)
	f.setString("nombre", req.Nombre)
	f.setString("apellidos", req.Apellidos)
	f.setString("email", req.Email)
	return s.update(ctx, repository.Record(f))
}
