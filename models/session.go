package models

import "time"

// SessionState represents the lifecycle state of an onboarding session
type SessionState string

const (
	// SessionStateCreated means the session exists and the intro DM has been
	// sent, but the member has not pressed the start button yet.
	SessionStateCreated SessionState = "created"
	// SessionStateInProgress means the member is answering questions.
	SessionStateInProgress SessionState = "in_progress"
	// SessionStateComplete means every question has been answered and the
	// session is ready for finalization.
	SessionStateComplete SessionState = "complete"
)

// Session tracks one member's progress through the onboarding question flow.
// Sessions live only in memory and are lost on restart.
type Session struct {
	ID          string // correlation ID for logs
	UserID      string
	DisplayName string
	GuildID     string

	// Channel the consumed invite pointed at; empty when invite
	// detection was undetermined.
	ChannelID   string
	ChannelName string

	State     SessionState
	Index     int // current question, 0-based
	Answers   map[string]string
	CreatedAt time.Time
}
