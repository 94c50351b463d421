package dto

import (
	"time"

	"github.com/studifund/studifund-api/internal/models"
)

// RegisterRequest describes the registration payload for a new account.
type RegisterRequest struct {
	Username          string `json:"username" validate:"required,min=3,max=64"`
	Email             string `json:"email" validate:"required,email,max=255"`
	Password          string `json:"password" validate:"required,min=6,max=128"`
	FullName          string `json:"full_name" validate:"required,min=2,max=255"`
	Phone             string `json:"phone" validate:"omitempty,max=32"`
	NationalID        string `json:"national_id" validate:"required,max=32"`
	ProgramID         string `json:"program_id" validate:"required,max=64"`
	StudyProgram      string `json:"study_program" validate:"omitempty,max=255"`
	BankName          string `json:"bank_name" validate:"omitempty,max=128"`
	BankAccountNumber string `json:"bank_account_number" validate:"omitempty,max=64"`
	BankAccountHolder string `json:"bank_account_holder" validate:"omitempty,max=255"`
	Role              string `json:"role" validate:"omitempty,oneof=student admin"`
}

// UserUpdateRequest describes a partial profile update.
type UserUpdateRequest struct {
	Email             *string `json:"email" validate:"omitempty,email,max=255"`
	FullName          *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone             *string `json:"phone" validate:"omitempty,max=32"`
	StudyProgram      *string `json:"study_program" validate:"omitempty,max=255"`
	BankName          *string `json:"bank_name" validate:"omitempty,max=128"`
	BankAccountNumber *string `json:"bank_account_number" validate:"omitempty,max=64"`
	BankAccountHolder *string `json:"bank_account_holder" validate:"omitempty,max=255"`
}

// UserResponse is the serialized account representation, password excluded.
type UserResponse struct {
	ID                uint      `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	NationalID        string    `json:"national_id"`
	ProgramID         string    `json:"program_id"`
	StudyProgram      string    `json:"study_program"`
	BankName          string    `json:"bank_name"`
	BankAccountNumber string    `json:"bank_account_number"`
	BankAccountHolder string    `json:"bank_account_holder"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:                model.ID,
		Username:          model.Username,
		Email:             model.Email,
		FullName:          model.FullName,
		Phone:             model.Phone,
		NationalID:        model.NationalID,
		ProgramID:         model.ProgramID,
		StudyProgram:      model.StudyProgram,
		BankName:          model.BankName,
		BankAccountNumber: model.BankAccountNumber,
		BankAccountHolder: model.BankAccountHolder,
		Role:              model.Role,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// NewUserResponseSlice converts a slice of models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}
