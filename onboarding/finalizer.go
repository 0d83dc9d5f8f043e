package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"onboarder/events"
	"onboarder/models"
)

// User-visible messages sent from the finalize step.
const (
	RejectionMessage = "Thanks for your interest! We couldn't find your email on our enrolled learners list. " +
		"If you believe this is a mistake, please reach out to the program team."

	GenericFailureMessage = "Something went wrong while completing your onboarding. " +
		"Please contact the program team and we'll sort it out."
)

// Finalizer runs the terminal step of a completed session: allow-list
// verification, record append, role and channel grants, confirmation.
type Finalizer struct {
	roster   Roster
	sheet    RecordAppender
	gateway  GuildGateway
	registry *Registry
	bus      *events.Bus
	roleName string
}

// NewFinalizer creates a finalizer
func NewFinalizer(roster Roster, sheet RecordAppender, gateway GuildGateway, registry *Registry, bus *events.Bus, roleName string) *Finalizer {
	return &Finalizer{
		roster:   roster,
		sheet:    sheet,
		gateway:  gateway,
		registry: registry,
		bus:      bus,
		roleName: roleName,
	}
}

// Finalize verifies the session's email and, on success, appends the
// record, grants the role and channel access, and confirms to the user.
//
// A returned error always leaves the session in the registry so the
// collected answers are not lost; the caller reports a generic failure to
// the user. Rejection (email not on the allow-list) is not an error: the
// session is discarded and nothing is written anywhere.
func (f *Finalizer) Finalize(ctx context.Context, session *models.Session) error {
	email := session.Answers["email"]

	record, err := f.roster.Lookup(email)
	if err != nil {
		return fmt.Errorf("allow-list lookup failed: %w", err)
	}

	if record == nil {
		log.WithFields(log.Fields{
			"sessionID": session.ID,
			"userID":    session.UserID,
		}).Info("Email not on allow-list, rejecting")

		if err := f.gateway.SendDM(ctx, session.UserID, RejectionMessage); err != nil {
			log.Errorf("Failed to send rejection message to user %s: %v", session.UserID, err)
		}
		f.registry.Remove(session.UserID)
		f.bus.Emit(ctx, events.MemberRejectedEvent{
			SessionID:   session.ID,
			UserID:      session.UserID,
			GuildID:     session.GuildID,
			DisplayName: session.DisplayName,
			Email:       email,
		})
		return nil
	}

	row := []interface{}{
		time.Now().UTC().Format(time.RFC3339),
		session.Answers["name"],
		email,
		session.Answers["phone"],
		session.DisplayName,
		session.ChannelName,
	}
	if err := f.sheet.AppendRow(ctx, row); err != nil {
		// Session stays in the registry as a manual-retry point.
		return fmt.Errorf("record append failed: %w", err)
	}

	if err := f.gateway.AssignRole(ctx, session.GuildID, session.UserID, f.roleName); err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			log.Warnf("Role %q not found in guild %s, continuing without it", f.roleName, session.GuildID)
		} else {
			return fmt.Errorf("role assignment failed: %w", err)
		}
	}

	grantedChannelID := ""
	if session.ChannelID != "" {
		if err := f.gateway.GrantChannelAccess(ctx, session.ChannelID, session.UserID); err != nil {
			log.Errorf("Failed to grant channel %s access to user %s: %v", session.ChannelID, session.UserID, err)
		} else {
			grantedChannelID = session.ChannelID
		}
	}

	confirmation := fmt.Sprintf("You're all set, %s! Welcome to the program. 🎉", record.Name)
	if grantedChannelID != "" {
		confirmation += fmt.Sprintf("\nYour batch channel: https://discord.com/channels/%s/%s", session.GuildID, grantedChannelID)
	}
	if err := f.gateway.SendDM(ctx, session.UserID, confirmation); err != nil {
		log.Errorf("Failed to send confirmation message to user %s: %v", session.UserID, err)
	}

	f.registry.Remove(session.UserID)
	f.bus.Emit(ctx, events.MemberVerifiedEvent{
		SessionID:   session.ID,
		UserID:      session.UserID,
		GuildID:     session.GuildID,
		DisplayName: session.DisplayName,
		Email:       email,
		ChannelID:   grantedChannelID,
		ChannelName: session.ChannelName,
	})

	log.WithFields(log.Fields{
		"sessionID": session.ID,
		"userID":    session.UserID,
		"program":   record.Program,
		"batch":     record.Batch,
	}).Info("Member onboarded")

	return nil
}
