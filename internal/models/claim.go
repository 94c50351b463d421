package models

import "time"

const (
	// ClaimStatusPending indicates the claim awaits administrator review.
	ClaimStatusPending = "pending"
	// ClaimStatusApproved indicates the claim was accepted for payment.
	ClaimStatusApproved = "approved"
	// ClaimStatusRejected indicates the claim was declined.
	ClaimStatusRejected = "rejected"
)

// Claim represents a student's request for reimbursement of an expense.
type Claim struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	ClaimType         string     `gorm:"size:255;not null" json:"claim_type"`
	Amount            float64    `gorm:"not null" json:"amount"`
	Period            string     `gorm:"size:64;not null" json:"period"`
	Description       string     `gorm:"type:text" json:"description"`
	ReceiptFile       string     `gorm:"size:512;not null" json:"receipt_file"`
	SupportingFile    string     `gorm:"size:512" json:"supporting_file"`
	BankName          string     `gorm:"size:128" json:"bank_name"`
	BankAccountNumber string     `gorm:"size:64" json:"bank_account_number"`
	Status            string     `gorm:"size:16;not null;default:pending" json:"status"`
	ReviewComment     *string    `gorm:"type:text" json:"review_comment"`
	ReviewedBy        *uint      `json:"reviewed_by"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	User              User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsReviewed reports whether the claim has left the pending state.
func (c Claim) IsReviewed() bool {
	return c.Status != ClaimStatusPending
}

// ValidClaimStatusTarget reports whether the value is a terminal review status.
func ValidClaimStatusTarget(status string) bool {
	return status == ClaimStatusApproved || status == ClaimStatusRejected
}
