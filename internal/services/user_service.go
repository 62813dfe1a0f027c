package services

import (
	"context"
	"fmt"

	"github.com/hirendodiya515/roller-management-system/internal/auth"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/repositories"
)

type UserService struct {
	Users      *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(users *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Users: users, JWTManager: jwtManager}
}

// Signup registers a new account. New users start as Viewer until an admin
// promotes them.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleViewer,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account suspended")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.Users.List(ctx)
}

func (s *UserService) UpdateRole(ctx context.Context, id int, req *models.UpdateRoleRequest) error {
	if !models.ValidRole(req.Role) {
		return fmt.Errorf("invalid role %q", req.Role)
	}
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	isActive := user.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return s.Users.UpdateRole(ctx, id, req.Role, isActive)
}
