package service

import (
	"context"
	"fmt"
	"tienda_api/internal/common"
	"tienda_api/internal/common/security"
	"tienda_api/internal/domain/model"
	"tienda_api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuthService struct {
	credRepo repository.CredentialRepository
	tokens   *security.TokenService
	denylist repository.TokenDenylist
	log      logrus.FieldLogger
}

func NewAuthService(
	store *repository.RecordStore,
	tokens *security.TokenService,
	denylist repository.TokenDenylist,
	log logrus.FieldLogger,
) *AuthService {
	return &AuthService{
		credRepo: repository.NewPgCredentialRepository(store),
		tokens:   tokens,
		denylist: denylist,
		log:      log,
	}
}

// Bind returns a copy whose credential writes go through store, typically a
// transaction-bound one.
func (s *AuthService) Bind(store *repository.RecordStore) *AuthService {
	bound := *s
	bound.credRepo = repository.NewPgCredentialRepository(store)
	return &bound
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  model.PublicProfile `json:"user"`
}

type RegisterRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.NewValidationError("Username y password son requeridos")
	}

	cred, err := s.credRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}
	if cred == nil {
		security.BurnPasswordCheck(req.Password)
		return nil, common.ErrInvalidCredentials
	}
	if !security.CheckPasswordHash(req.Password, cred.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(security.Claims{
		ID:       cred.ID,
		UserID:   cred.UserID,
		Username: cred.Username,
		Role:     cred.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.WithFields(logrus.Fields{"username": cred.Username, "role": cred.Role}).Info("User logged in")
	return &AuthResponse{Token: token, User: cred.Profile()}, nil
}

// Register stores a hashed credential for an existing user. The role defaults to user.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.Credential, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.NewValidationError("Username y password son requeridos")
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if !model.IsKnownRole(req.Role) {
		return nil, common.NewValidationError("El rol no es válido")
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred, err := s.credRepo.Create(ctx, &model.Credential{
		UserID:         req.UserID,
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Role:           req.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}
	return cred, nil
}

// Logout revokes the presented token until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *security.Claims) error {
	if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.log.WithField("username", claims.Username).Info("User logged out")
	return nil
}

func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*security.Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", common.ErrInvalidToken)
	}
	return claims, nil
}

func (s *AuthService) LogoutEnabled() bool {
	return s.denylist.Enabled()
}
