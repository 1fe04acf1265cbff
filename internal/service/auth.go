package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/token"
)

// Auth implements registration, login, refresh rotation and logout.
type Auth struct {
	users      domain.UserRepository
	tokens     *token.Manager
	bcryptCost int
}

func NewAuth(users domain.UserRepository, tokens *token.Manager, bcryptCost int) *Auth {
	return &Auth{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *Auth) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	email := normalizeEmail(in.Email)

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.Internal(err)
	}

	user := &domain.User{
		Name:       in.Name,
		Email:      email,
		Password:   string(hash),
		Role:       domain.RoleMember,
		Department: in.Department,
		IsActive:   true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueAndStore(ctx, user)
}

func (s *Auth) Login(ctx context.Context, in domain.LoginInput) (*domain.AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			// Same message as a wrong password, to avoid account enumeration.
			return nil, domain.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.Forbidden("your account has been deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, domain.Unauthorized("invalid email or password")
	}

	return s.issueAndStore(ctx, user)
}

func (s *Auth) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.TokenPair{}, domain.Unauthorized("invalid refresh token")
		}
		return domain.TokenPair{}, err
	}

	// The stored value must match exactly: a newer login or refresh has
	// already rotated it otherwise, and the presented token is dead.
	if user.RefreshToken != refreshToken {
		return domain.TokenPair{}, domain.Unauthorized("invalid refresh token")
	}

	if !user.IsActive {
		return domain.TokenPair{}, domain.Forbidden("your account has been deactivated")
	}

	result, err := s.issueAndStore(ctx, user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return result.Tokens, nil
}

func (s *Auth) Logout(ctx context.Context, userID uint) error {
	return s.users.SetRefreshToken(ctx, userID, "")
}

func (s *Auth) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Auth) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return domain.Conflict("email already registered")
	}
	if domain.IsKind(err, domain.KindNotFound) {
		return nil
	}
	return err
}

// issueAndStore creates a fresh token pair and persists the refresh token
// on the user, rotating out any previous one.
func (s *Auth) issueAndStore(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	pair, err := s.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = pair.RefreshToken
	return &domain.AuthResult{User: user, Tokens: pair}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
