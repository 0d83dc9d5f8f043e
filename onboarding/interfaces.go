package onboarding

import (
	"context"
	"errors"

	"onboarder/models"
)

// ErrRoleNotFound is returned by GuildGateway.AssignRole when no role with
// the configured name exists in the guild. The finalizer treats it as a
// warning, not a failure.
var ErrRoleNotFound = errors.New("role not found")

// Roster looks up an email against the static allow-list of paid enrollees.
// Returns (nil, nil) when the email is not on the list.
type Roster interface {
	Lookup(email string) (*models.LearnerRecord, error)
}

// RecordAppender appends one flat row to the external record store.
type RecordAppender interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

// GuildGateway covers the chat-platform mutations the finalizer needs.
type GuildGateway interface {
	// SendDM delivers a direct message to the user.
	SendDM(ctx context.Context, userID, content string) error
	// AssignRole resolves the member and grants the named role. Returns
	// ErrRoleNotFound when the role does not exist; any other error means
	// the member or guild could not be resolved.
	AssignRole(ctx context.Context, guildID, userID, roleName string) error
	// GrantChannelAccess creates a permission overwrite letting the user
	// view, send and read history in the channel.
	GrantChannelAccess(ctx context.Context, channelID, userID string) error
}
