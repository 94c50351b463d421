package dto

import (
	"time"

	"github.com/studifund/studifund-api/internal/models"
)

// ClaimCreateRequest describes a student's claim submission. Any status field
// sent by the client is ignored; new claims always start pending.
type ClaimCreateRequest struct {
	ClaimType      string  `json:"claim_type" validate:"required,min=2,max=255"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Period         string  `json:"period" validate:"required,max=64"`
	Description    string  `json:"description" validate:"omitempty,max=4000"`
	ReceiptFile    string  `json:"receipt_file" validate:"required,max=512"`
	SupportingFile string  `json:"supporting_file" validate:"omitempty,max=512"`
}

// ClaimStatusUpdateRequest is the administrator's review decision.
type ClaimStatusUpdateRequest struct {
	Status        string  `json:"status" validate:"required,oneof=approved rejected"`
	ReviewComment *string `json:"review_comment" validate:"omitempty,max=2000"`
}

// ClaimResponse is the serialized claim returned to API clients.
type ClaimResponse struct {
	ID                uint       `json:"id"`
	UserID            uint       `json:"user_id"`
	ClaimType         string     `json:"claim_type"`
	Amount            float64    `json:"amount"`
	Period            string     `json:"period"`
	Description       string     `json:"description"`
	ReceiptFile       string     `json:"receipt_file"`
	SupportingFile    string     `json:"supporting_file,omitempty"`
	BankName          string     `json:"bank_name"`
	BankAccountNumber string     `json:"bank_account_number"`
	Status            string     `json:"status"`
	ReviewComment     *string    `json:"review_comment"`
	ReviewedBy        *uint      `json:"reviewed_by"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ClaimSummaryResponse aggregates claim counts and amounts per status for the
// admin dashboard.
type ClaimSummaryResponse struct {
	TotalClaims    int64     `json:"total_claims"`
	Pending        int64     `json:"pending"`
	Approved       int64     `json:"approved"`
	Rejected       int64     `json:"rejected"`
	TotalAmount    float64   `json:"total_amount"`
	ApprovedAmount float64   `json:"approved_amount"`
	GeneratedAt    time.Time `json:"generated_at"`
	CacheHit       bool      `json:"cache_hit"`
}

// NewClaimResponse converts a model into a DTO.
func NewClaimResponse(model models.Claim) ClaimResponse {
	return ClaimResponse{
		ID:                model.ID,
		UserID:            model.UserID,
		ClaimType:         model.ClaimType,
		Amount:            model.Amount,
		Period:            model.Period,
		Description:       model.Description,
		ReceiptFile:       model.ReceiptFile,
		SupportingFile:    model.SupportingFile,
		BankName:          model.BankName,
		BankAccountNumber: model.BankAccountNumber,
		Status:            model.Status,
		ReviewComment:     model.ReviewComment,
		ReviewedBy:        model.ReviewedBy,
		ReviewedAt:        model.ReviewedAt,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// NewClaimResponseSlice converts a slice of models into DTOs.
func NewClaimResponseSlice(claims []models.Claim) []ClaimResponse {
	responses := make([]ClaimResponse, 0, len(claims))
	for _, claim := range claims {
		responses = append(responses, NewClaimResponse(claim))
	}

	return responses
}
