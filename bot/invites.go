package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// InviteFetcher fetches the current invites for a guild.
type InviteFetcher interface {
	GuildInvites(guildID string) ([]*discordgo.Invite, error)
}

// InviteTracker keeps a per-guild cache of invite code → use-count and
// infers which invite a new member consumed by diffing current counts
// against the cache. The platform emits no usage-delta event, so polling
// the full invite list on every join is the only way to attribute joins.
// Best-effort only: simultaneous joins through different links can be
// misattributed.
type InviteTracker struct {
	mu    sync.Mutex
	fetch InviteFetcher
	cache map[string]map[string]int
}

// NewInviteTracker creates a tracker with an empty cache
func NewInviteTracker(fetcher InviteFetcher) *InviteTracker {
	return &InviteTracker{
		fetch: fetcher,
		cache: make(map[string]map[string]int),
	}
}

// Refresh replaces the guild's cached use-counts with the counts currently
// reported by the platform. On fetch failure the prior cache is left
// untouched.
func (t *InviteTracker) Refresh(guildID string) {
	invites, err := t.fetch.GuildInvites(guildID)
	if err != nil {
		log.Errorf("Failed to fetch invites for guild %s: %v", guildID, err)
		return
	}

	t.mu.Lock()
	t.cache[guildID] = usesByCode(invites)
	t.mu.Unlock()
}

// Detect returns the invite whose use-count grew since the last snapshot,
// or nil when attribution is undetermined (no prior cache, fetch failure,
// or no count changed). The cache is refreshed to the fetched counts
// regardless of detection success. Ties go to the first match in fetch
// order.
func (t *InviteTracker) Detect(guildID string) *discordgo.Invite {
	invites, err := t.fetch.GuildInvites(guildID)
	if err != nil {
		log.Errorf("Failed to fetch invites for guild %s: %v", guildID, err)
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prior, ok := t.cache[guildID]
	t.cache[guildID] = usesByCode(invites)
	if !ok {
		return nil
	}

	for _, invite := range invites {
		if invite.Uses > prior[invite.Code] {
			return invite
		}
	}
	return nil
}

// InviteCreated upserts one cache entry so the cache doesn't silently age
// between joins. A guild with no snapshot yet is left alone: a partial
// entry would be mistaken for a full prior snapshot by Detect.
func (t *InviteTracker) InviteCreated(guildID, code string, uses int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.cache[guildID]; ok {
		entry[code] = uses
	}
}

// InviteDeleted removes one cache entry
func (t *InviteTracker) InviteDeleted(guildID, code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.cache[guildID]; ok {
		delete(entry, code)
	}
}

func usesByCode(invites []*discordgo.Invite) map[string]int {
	counts := make(map[string]int, len(invites))
	for _, invite := range invites {
		counts[invite.Code] = invite.Uses
	}
	return counts
}
