package domain

import "time"

// ActivityType classifies a logged interaction with a client.
type ActivityType string

const (
	ActivityCall     ActivityType = "call"
	ActivityMeeting  ActivityType = "meeting"
	ActivityNote     ActivityType = "note"
	ActivityEmail    ActivityType = "email"
	ActivityFollowUp ActivityType = "follow-up"
)

// ValidActivityType reports whether t is a known activity type.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityCall, ActivityMeeting, ActivityNote, ActivityEmail, ActivityFollowUp:
		return true
	}
	return false
}

// ActivityPriority ranks an activity.
type ActivityPriority string

const (
	PriorityLow    ActivityPriority = "low"
	PriorityMedium ActivityPriority = "medium"
	PriorityHigh   ActivityPriority = "high"
)

// Activity is a single interaction logged against a client.
type Activity struct {
	ActivityID  string           `json:"activityID"`
	ClientID    string           `json:"clientID"`
	Type        ActivityType     `json:"type"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Done        bool             `json:"done"`
	Priority    ActivityPriority `json:"priority"`
	AuditFields
}
