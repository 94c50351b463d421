package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/dto"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/repository"
)

var (
	// ErrUserNotFound indicates the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser indicates a registration collides with an existing
	// username, email, national id or program id.
	ErrDuplicateUser = errors.New("username, email, national id or program id already registered")
	// ErrNotProfileOwner indicates a non-admin tried to modify someone else's profile.
	ErrNotProfileOwner = errors.New("cannot modify another user's profile")
)

// UserService handles registration and profile management.
type UserService interface {
	Register(ctx context.Context, actor Actor, req dto.RegisterRequest) (dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, actor Actor, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, actor Actor, id uint, req dto.UserUpdateRequest) (dto.UserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs a user service.
func NewUserService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

// Register creates a new account. The role defaults to student; an admin role
// in the payload is honoured only when the caller is already an admin.
func (s *userService) Register(ctx context.Context, actor Actor, req dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	conflicts, err := s.users.CountConflicts(ctx, username, email, req.NationalID, req.ProgramID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if conflicts > 0 {
		return dto.UserResponse{}, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	role := models.RoleStudent
	if req.Role == models.RoleAdmin && actor.IsAdmin() {
		role = models.RoleAdmin
	}

	user := models.User{
		Username:          username,
		Email:             email,
		Password:          string(hash),
		FullName:          strings.TrimSpace(req.FullName),
		Phone:             strings.TrimSpace(req.Phone),
		NationalID:        strings.TrimSpace(req.NationalID),
		ProgramID:         strings.TrimSpace(req.ProgramID),
		StudyProgram:      strings.TrimSpace(req.StudyProgram),
		BankName:          strings.TrimSpace(req.BankName),
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
		BankAccountHolder: strings.TrimSpace(req.BankAccountHolder),
		Role:              role,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return dto.NewUserResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Get(ctx context.Context, actor Actor, id uint) (dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return dto.UserResponse{}, ErrNotProfileOwner
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, actor Actor, id uint, req dto.UserUpdateRequest) (dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return dto.UserResponse{}, ErrNotProfileOwner
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.StudyProgram != nil {
		updates["study_program"] = strings.TrimSpace(*req.StudyProgram)
	}
	if req.BankName != nil {
		updates["bank_name"] = strings.TrimSpace(*req.BankName)
	}
	if req.BankAccountNumber != nil {
		updates["bank_account_number"] = strings.TrimSpace(*req.BankAccountNumber)
	}
	if req.BankAccountHolder != nil {
		updates["bank_account_holder"] = strings.TrimSpace(*req.BankAccountHolder)
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}
