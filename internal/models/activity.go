package models

import "time"

// ActivityType mirrors domain.ActivityType at the storage layer.
type ActivityType string

// ActivityPriority mirrors domain.ActivityPriority at the storage layer.
type ActivityPriority string

// Activity is the activities table row.
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
