package models

import "time"

// Role values assignable to a user account.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a portal account, either a scholarship student or an administrator.
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Username          string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email             string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"size:255;not null" json:"-"`
	FullName          string    `gorm:"size:255;not null" json:"full_name"`
	Phone             string    `gorm:"size:32" json:"phone"`
	NationalID        string    `gorm:"size:32;uniqueIndex;not null" json:"national_id"`
	ProgramID         string    `gorm:"size:64;uniqueIndex;not null" json:"program_id"`
	StudyProgram      string    `gorm:"size:255" json:"study_program"`
	BankName          string    `gorm:"size:128" json:"bank_name"`
	BankAccountNumber string    `gorm:"size:64" json:"bank_account_number"`
	BankAccountHolder string    `gorm:"size:255" json:"bank_account_holder"`
	Role              string    `gorm:"size:16;not null;default:student" json:"role"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
