package models

import "time"

// Activity is an interaction logged against a lead by an authenticated user.
//
// UserName is a snapshot of the actor's full name taken at creation time.
type Activity struct {
	ID           int64     `json:"id" db:"id"`
	LeadID       int64     `json:"lead_id" db:"lead_id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	Title        string    `json:"title" db:"title"`
	Notes        *string   `json:"notes" db:"notes"`
	Duration     *int64    `json:"duration" db:"duration"`
	ActivityDate Date      `json:"activity_date" db:"activity_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UserName     string    `json:"user_name" db:"user_name"`
}

// TableName returns the name of the database table
// associated with the Activity model.
func (a Activity) TableName() string {
	return "activities"
}

// ActivityCreate is the payload of a single activity in an add request.
type ActivityCreate struct {
	ActivityType string  `json:"activity_type" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Notes        *string `json:"notes"`
	Duration     *int64  `json:"duration"`
	ActivityDate *Date   `json:"activity_date" validate:"required"`
}

// NewActivity stamps c with the owning lead, the acting user and the
// creation time.
func NewActivity(c ActivityCreate, leadID int64, actor User, now time.Time) Activity {
	activity := Activity{
		LeadID:       leadID,
		UserID:       actor.ID,
		ActivityType: c.ActivityType,
		Title:        c.Title,
		Notes:        c.Notes,
		Duration:     c.Duration,
		CreatedAt:    now,
		UserName:     actor.FullName(),
	}
	if c.ActivityDate != nil {
		activity.ActivityDate = *c.ActivityDate
	}
	return activity
}
