package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"onboarder/events"
	"onboarder/onboarding"
)

// Config holds bot configuration
type Config struct {
	Token           string
	LearnerRoleName string
}

type Bot struct {
	config    Config
	session   *discordgo.Session
	tracker   *InviteTracker
	registry  *onboarding.Registry
	finalizer *onboarding.Finalizer
	bus       *events.Bus
}

// sessionInviteFetcher adapts a discordgo session to the InviteFetcher
// interface so the tracker stays testable without a live connection.
type sessionInviteFetcher struct {
	session *discordgo.Session
}

func (f *sessionInviteFetcher) GuildInvites(guildID string) ([]*discordgo.Invite, error) {
	return f.session.GuildInvites(guildID)
}

func New(config Config, registry *onboarding.Registry, roster onboarding.Roster, sheet onboarding.RecordAppender, bus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildInvites |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		config:   config,
		session:  dg,
		tracker:  NewInviteTracker(&sessionInviteFetcher{session: dg}),
		registry: registry,
		bus:      bus,
	}
	bot.finalizer = onboarding.NewFinalizer(roster, sheet, NewGateway(dg), registry, bus, config.LearnerRoleName)

	// Register gateway event handlers
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleInviteCreate)
	dg.AddHandler(bot.handleInviteDelete)
	dg.AddHandler(bot.handleMemberAdd)
	dg.AddHandler(bot.handleInteraction)
	dg.AddHandler(bot.handleMessage)

	// Post the public welcome once a member is verified. Best effort: a
	// failed post never blocks onboarding.
	bus.Subscribe(events.EventTypeMemberVerified, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.MemberVerifiedEvent)
		if !ok || e.ChannelID == "" {
			return
		}
		welcome := fmt.Sprintf("Welcome <@%s>! 👋 Say hi to your batch.", e.UserID)
		if _, err := dg.ChannelMessageSend(e.ChannelID, welcome); err != nil {
			log.Errorf("Failed to post welcome for user %s in channel %s: %v", e.UserID, e.ChannelID, err)
		}
	})

	// Audit trail for the onboarding lifecycle
	bus.Subscribe(events.EventTypeSessionStarted, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.SessionStartedEvent); ok {
			log.WithFields(log.Fields{
				"sessionID": e.SessionID,
				"userID":    e.UserID,
				"guildID":   e.GuildID,
			}).Info("Onboarding flow started")
		}
	})
	bus.Subscribe(events.EventTypeMemberRejected, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.MemberRejectedEvent); ok {
			log.WithFields(log.Fields{
				"sessionID": e.SessionID,
				"userID":    e.UserID,
				"guildID":   e.GuildID,
			}).Info("Member rejected by allow-list")
		}
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}
