package models

import (
	"time"
)

// Form types accepted by the intake routes.
const (
	FormTypeSignup = "signup"
	FormTypeVIP    = "vip"
	FormTypeOffer  = "offer"
)

// FormSubmission is the append-only audit record of one inbound form post.
// Rows are created once per intake and never updated or deleted.
type FormSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FormType  string    `gorm:"type:varchar(20);index;not null" json:"form_type"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"` // raw, pre-normalization
	Data      string    `gorm:"type:text" json:"data"`         // JSON blob of remaining fields
	IP        string    `gorm:"type:varchar(64)" json:"ip"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FormSubmission) TableName() string {
	return "form_submissions"
}
