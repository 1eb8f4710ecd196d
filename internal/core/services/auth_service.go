package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/config"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/jwt"
	"bloodlink/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserInactive       = errors.New("user account is inactive")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Password     string           `json:"password"`
	Role         domain.Role      `json:"role"`
	Phone        string           `json:"phone,omitempty"`
	BloodType    domain.BloodType `json:"blood_type,omitempty"`
	HospitalName string           `json:"hospital_name,omitempty"`
	Address      string           `json:"address,omitempty"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate role
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	// 2. Optional blood type must be a known group when present
	if input.BloodType != "" && !input.BloodType.Valid() {
		return nil, domain.ErrInvalidBloodType
	}

	// 3. Check email uniqueness (stored lowercase)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 4. Hash password. A hashing failure is an internal error, not a
	// credential failure.
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user
	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Password:     hashedPassword,
		Role:         input.Role,
		Phone:        input.Phone,
		BloodType:    input.BloodType,
		HospitalName: input.HospitalName,
		Address:      input.Address,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 6. Issue token
	token, err := jwt.Generate(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.TTLHours)
	if err != nil {
		return nil, err
	}

	log.Printf("User registered: %s (%s)", user.Email, user.Role)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	token, err := jwt.Generate(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.TTLHours)
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in: %s", user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
