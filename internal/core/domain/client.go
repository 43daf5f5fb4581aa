package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus is the sales pipeline stage of a client/lead.
type ClientStatus string

const (
	ClientNew       ClientStatus = "new"
	ClientContacted ClientStatus = "contacted"
	ClientQualified ClientStatus = "qualified"
	ClientWon       ClientStatus = "won"
	ClientLost      ClientStatus = "lost"
)

// ValidClientStatus reports whether s is one of the pipeline stages.
func ValidClientStatus(s ClientStatus) bool {
	switch s {
	case ClientNew, ClientContacted, ClientQualified, ClientWon, ClientLost:
		return true
	}
	return false
}

// Client is a sales lead/account record owned by one assigned worker.
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
