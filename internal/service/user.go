package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

// Users implements user administration and profile management.
type Users struct {
	users      domain.UserRepository
	bcryptCost int
}

func NewUsers(users domain.UserRepository, bcryptCost int) *Users {
	return &Users{users: users, bcryptCost: bcryptCost}
}

// Create provisions a user with an explicit role (admin path; registration
// always creates members).
func (s *Users) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("email already registered")
	} else if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, domain.Validation("invalid role", domain.FieldError{
			Field:   "role",
			Message: "must be one of admin, manager, member",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.Internal(err)
	}

	user := &domain.User{
		Name:       in.Name,
		Email:      email,
		Password:   string(hash),
		Role:       role,
		Department: in.Department,
		IsActive:   true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Users) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Users) List(ctx context.Context, filter domain.UserFilter, page pagination.Params) ([]domain.User, int64, error) {
	return s.users.List(ctx, filter, page)
}

func (s *Users) TeamMembers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}

func (s *Users) Update(ctx context.Context, id uint, in domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
		if !user.IsActive {
			// Deactivation ends the session: the stored refresh token
			// must not survive it.
			user.RefreshToken = ""
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Users) UpdateRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.Validation("invalid role", domain.FieldError{
			Field:   "role",
			Message: "must be one of admin, manager, member",
		})
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Users) ChangePassword(ctx context.Context, userID uint, in domain.ChangePasswordInput) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return domain.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.bcryptCost)
	if err != nil {
		return domain.Internal(err)
	}

	user.Password = string(hash)
	return s.users.Update(ctx, user)
}

// Deactivate soft-deletes: the account stays for audit but can no longer
// log in, and its refresh token is cleared. Reactivation goes through
// Update with IsActive set.
func (s *Users) Deactivate(ctx context.Context, id uint) error {
	return s.users.Deactivate(ctx, id)
}

// Delete removes the account permanently.
func (s *Users) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}

func (s *Users) Stats(ctx context.Context) (*domain.UserStats, error) {
	return s.users.Stats(ctx)
}
