package domain

// FeedbackStatus is the moderation state of a feedback submission.
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackRejected FeedbackStatus = "rejected"
)

// ValidFeedbackStatus reports whether s is a member of the status enum.
func ValidFeedbackStatus(s FeedbackStatus) bool {
	switch s {
	case FeedbackPending, FeedbackApproved, FeedbackRejected:
		return true
	}
	return false
}

// Feedback is a client-submitted rating for a won deal. Only approved
// feedback counts towards the client's average rating.
type Feedback struct {
	FeedbackID     string         `json:"feedbackID"`
	ClientID       string         `json:"clientID"`
	Rating         int            `json:"rating"` // 1..5
	Comment        string         `json:"comment"`
	ServiceQuality int            `json:"serviceQuality"`
	Communication  int            `json:"communication"`
	WouldRecommend bool           `json:"wouldRecommend"`
	SubmittedBy    string         `json:"submittedBy"` // client email or name, not a user ID
	IsAnonymous    bool           `json:"isAnonymous"`
	Status         FeedbackStatus `json:"status"`
	AuditFields
}
