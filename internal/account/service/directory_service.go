package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"couriertrack/internal/domain"
	apperrors "couriertrack/internal/errors"
)

const (
	maxNameLength  = 100
	maxEmailLength = 100
)

type UserRepository interface {
	Insert(ctx context.Context, user domain.User) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type AdminRepository interface {
	Insert(ctx context.Context, admin domain.Admin) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}

type CreateUserInput struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
}

type CreateAdminInput struct {
	Name  string
	Email string
	Phone *string
	Role  *string
}

// DirectoryService manages the customers and admins couriers refer to.
type DirectoryService struct {
	users  UserRepository
	admins AdminRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewDirectoryService(users UserRepository, admins AdminRepository, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		users:  users,
		admins: admins,
		logger: logger,
		now:    time.Now,
	}
}

func (s *DirectoryService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	name, email, err := validateContact(in.Name, in.Email)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Name:      name,
		Email:     email,
		Phone:     optional(in.Phone),
		Address:   optional(in.Address),
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	user.ID, err = s.users.Insert(ctx, user)
	if err != nil {
		return nil, s.fail("create user", err)
	}

	s.logger.Info("user created", zap.Uint("userId", user.ID), zap.String("email", user.Email))
	return &user, nil
}

func (s *DirectoryService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*domain.Admin, error) {
	name, email, err := validateContact(in.Name, in.Email)
	if err != nil {
		return nil, err
	}

	role := domain.DefaultAdminRole
	if r := optional(in.Role); r != nil {
		role = *r
	}

	admin := domain.Admin{
		Name:      name,
		Email:     email,
		Phone:     optional(in.Phone),
		Role:      role,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	admin.ID, err = s.admins.Insert(ctx, admin)
	if err != nil {
		return nil, s.fail("create admin", err)
	}

	s.logger.Info("admin created", zap.Uint("adminId", admin.ID), zap.String("email", admin.Email), zap.String("role", admin.Role))
	return &admin, nil
}

func (s *DirectoryService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail("get user", err)
	}
	return user, nil
}

func (s *DirectoryService) GetAdmin(ctx context.Context, id uint) (*domain.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail("get admin", err)
	}
	return admin, nil
}

func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, s.fail("list users", err)
	}
	return users, nil
}

func (s *DirectoryService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, s.fail("list admins", err)
	}
	return admins, nil
}

func validateContact(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	var details []apperrors.ValidationDetail
	switch {
	case name == "":
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	case len(name) > maxNameLength:
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: fmt.Sprintf("name exceeds maximum length of %d", maxNameLength)})
	}

	switch {
	case email == "":
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is required"})
	case len(email) > maxEmailLength:
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: fmt.Sprintf("email exceeds maximum length of %d", maxEmailLength)})
	case !isPlainAddress(email):
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
	}

	if len(details) > 0 {
		return "", "", apperrors.NewValidationError("name and email are required", details...)
	}
	return name, email, nil
}

// isPlainAddress accepts bare addresses only, not "Name <addr>" forms.
func isPlainAddress(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *DirectoryService) fail(action string, err error) error {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return err
	}
	s.logger.Error("directory operation failed", zap.String("action", action), zap.Error(err))
	return apperrors.NewStorageError("failed to "+action, err)
}
