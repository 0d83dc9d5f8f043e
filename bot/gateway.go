package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"onboarder/onboarding"
)

// Gateway implements onboarding.GuildGateway over a discordgo session.
type Gateway struct {
	session *discordgo.Session
}

// NewGateway creates a gateway around an open discord session
func NewGateway(session *discordgo.Session) *Gateway {
	return &Gateway{session: session}
}

// SendDM opens (or reuses) the DM channel with the user and sends content
func (g *Gateway) SendDM(ctx context.Context, userID, content string) error {
	channel, err := g.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel with user %s: %w", userID, err)
	}
	if _, err := g.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to send DM to user %s: %w", userID, err)
	}
	return nil
}

// AssignRole resolves the member, finds the role by exact name and grants
// it. A missing role is reported as onboarding.ErrRoleNotFound; a member or
// guild that cannot be resolved is a hard error.
func (g *Gateway) AssignRole(ctx context.Context, guildID, userID, roleName string) error {
	if _, err := g.session.GuildMember(guildID, userID); err != nil {
		return fmt.Errorf("failed to resolve member %s in guild %s: %w", userID, guildID, err)
	}

	roles, err := g.session.GuildRoles(guildID)
	if err != nil {
		return fmt.Errorf("failed to fetch roles for guild %s: %w", guildID, err)
	}

	for _, role := range roles {
		if role.Name == roleName {
			if err := g.session.GuildMemberRoleAdd(guildID, userID, role.ID); err != nil {
				return fmt.Errorf("failed to add role %s to user %s: %w", role.ID, userID, err)
			}
			return nil
		}
	}
	return onboarding.ErrRoleNotFound
}

// GrantChannelAccess adds a member permission overwrite allowing the user
// to view the channel, send messages and read history.
func (g *Gateway) GrantChannelAccess(ctx context.Context, channelID, userID string) error {
	var allow int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory

	err := g.session.ChannelPermissionSet(channelID, userID, discordgo.PermissionOverwriteTypeMember, allow, 0)
	if err != nil {
		return fmt.Errorf("failed to set permissions on channel %s for user %s: %w", channelID, userID, err)
	}
	return nil
}
