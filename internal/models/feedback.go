package models

// FeedbackStatus mirrors domain.FeedbackStatus at the storage layer.
type FeedbackStatus string

// Feedback is the feedback table row.
type Feedback struct {
	FeedbackID     string         `json:"feedbackID"`
	ClientID       string         `json:"clientID"`
	Rating         int            `json:"rating"`
	Comment        string         `json:"comment"`
	ServiceQuality int            `json:"serviceQuality"`
	Communication  int            `json:"communication"`
	WouldRecommend bool           `json:"wouldRecommend"`
	SubmittedBy    string         `json:"submittedBy"`
	IsAnonymous    bool           `json:"isAnonymous"`
	Status         FeedbackStatus `json:"status"`
	AuditFields
}
