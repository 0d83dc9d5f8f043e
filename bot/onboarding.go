package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"onboarder/events"
	"onboarder/onboarding"
)

// startButtonID is the component custom ID of the start gate button.
const startButtonID = "onboarding_start"

const introMessage = "Welcome! 🎓 Before you can access your batch channels we need a few details. " +
	"Hit the button below when you're ready — it only takes a minute."

func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Infof("Guild available: %s (%s), snapshotting invites", g.Name, g.ID)
	b.tracker.Refresh(g.ID)
}

func (b *Bot) handleInviteCreate(s *discordgo.Session, e *discordgo.InviteCreate) {
	b.tracker.InviteCreated(e.GuildID, e.Code, e.Uses)
}

func (b *Bot) handleInviteDelete(s *discordgo.Session, e *discordgo.InviteDelete) {
	b.tracker.InviteDeleted(e.GuildID, e.Code)
}

// handleMemberAdd attributes the join to an invite, creates the session and
// opens the DM flow. The session is created before the DM is confirmed
// deliverable; a member with DMs disabled keeps a session parked at the
// start gate.
func (b *Bot) handleMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot {
		return
	}

	channelID, channelName := "", ""
	if invite := b.tracker.Detect(m.GuildID); invite != nil {
		if invite.Channel != nil {
			channelID = invite.Channel.ID
			channelName = invite.Channel.Name
		}
		log.WithFields(log.Fields{
			"userID":  m.User.ID,
			"guildID": m.GuildID,
			"invite":  invite.Code,
			"channel": channelName,
		}).Info("Member join attributed to invite")
	} else {
		log.WithFields(log.Fields{
			"userID":  m.User.ID,
			"guildID": m.GuildID,
		}).Warn("Member joined through undetermined invite")
	}

	b.registry.Create(m.User.ID, m.User.Username, m.GuildID, channelID, channelName)

	dmChannel, err := s.UserChannelCreate(m.User.ID)
	if err != nil {
		log.Errorf("Failed to open DM channel with user %s (DMs disabled?): %v", m.User.ID, err)
		return
	}

	_, err = s.ChannelMessageSendComplex(dmChannel.ID, &discordgo.MessageSend{
		Content: introMessage,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Start onboarding",
						Style:    discordgo.PrimaryButton,
						CustomID: startButtonID,
					},
				},
			},
		},
	})
	if err != nil {
		log.Errorf("Failed to send intro message to user %s: %v", m.User.ID, err)
	}
}

// handleInteraction opens the question flow when the start button is
// pressed. Clicks with no created session (already started, already
// finished) get a short notice so the interaction doesn't hang.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if i.MessageComponentData().CustomID != startButtonID {
		return
	}

	user := i.User
	if user == nil && i.Member != nil {
		user = i.Member.User
	}
	if user == nil {
		return
	}

	prompt, ok := b.registry.Start(user.ID)
	if !ok {
		b.respond(s, i, "There's no onboarding waiting for you right now.")
		return
	}

	if session := b.registry.Get(user.ID); session != nil {
		b.bus.Emit(context.Background(), events.SessionStartedEvent{
			SessionID:   session.ID,
			UserID:      user.ID,
			GuildID:     session.GuildID,
			DisplayName: session.DisplayName,
		})
	}

	b.respond(s, i, "Awesome, let's get you set up!\n\n"+prompt)
}

// handleMessage routes DM answers into the session state machine. Guild
// messages and messages from users with no started session are no-ops.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID != "" {
		return
	}

	result, reply, session := b.registry.HandleMessage(m.Author.ID, m.Content)
	switch result {
	case onboarding.ResultIgnored:
		return

	case onboarding.ResultInvalid, onboarding.ResultNext:
		if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
			log.Errorf("Failed to send prompt to user %s: %v", m.Author.ID, err)
		}

	case onboarding.ResultComplete:
		if _, err := s.ChannelMessageSend(m.ChannelID, "Thanks! Give me a moment to verify your details..."); err != nil {
			log.Errorf("Failed to send verification notice to user %s: %v", m.Author.ID, err)
		}
		if err := b.finalizer.Finalize(context.Background(), session); err != nil {
			log.Errorf("Finalize failed for user %s (session retained): %v", m.Author.ID, err)
			if _, err := s.ChannelMessageSend(m.ChannelID, onboarding.GenericFailureMessage); err != nil {
				log.Errorf("Failed to send failure message to user %s: %v", m.Author.ID, err)
			}
		}
	}
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Errorf("Error responding to interaction: %v", err)
	}
}
