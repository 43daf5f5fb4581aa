package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus mirrors domain.ClientStatus at the storage layer.
type ClientStatus string

// Client is the clients table row.
type Client struct {
	ClientID            string          `json:"clientID"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	Company             string          `json:"company"`
	Status              ClientStatus    `json:"status"`
	AssignedTo          string          `json:"assignedTo"`
	Notes               string          `json:"notes"`
	EstimatedValue      decimal.Decimal `json:"estimatedValue"`
	LastContactDate     time.Time       `json:"lastContactDate"`
	FeedbackRequested   bool            `json:"feedbackRequested"`
	FeedbackRequestedAt *time.Time      `json:"feedbackRequestedAt,omitempty"`
	AverageRating       float64         `json:"averageRating"`
	FeedbackCount       int             `json:"feedbackCount"`
	AuditFields
}
