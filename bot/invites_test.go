package bot

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInviteFetcher struct {
	invites []*discordgo.Invite
	err     error
}

func (f *fakeInviteFetcher) GuildInvites(guildID string) ([]*discordgo.Invite, error) {
	return f.invites, f.err
}

func invite(code string, uses int) *discordgo.Invite {
	return &discordgo.Invite{
		Code:    code,
		Uses:    uses,
		Channel: &discordgo.Channel{ID: "chan-" + code, Name: "batch-" + code},
	}
}

func TestInviteTracker_DetectFindsIncrementedInvite(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 5), invite("B", 2)}}
	tracker := NewInviteTracker(fetcher)
	tracker.Refresh("guild1")

	fetcher.invites = []*discordgo.Invite{invite("A", 5), invite("B", 3)}
	used := tracker.Detect("guild1")

	require.NotNil(t, used)
	assert.Equal(t, "B", used.Code)
	assert.Equal(t, "chan-B", used.Channel.ID)
}

func TestInviteTracker_DetectWithoutPriorCache(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 1)}}
	tracker := NewInviteTracker(fetcher)

	assert.Nil(t, tracker.Detect("guild1"))

	// The undetermined call still snapshotted the counts
	fetcher.invites = []*discordgo.Invite{invite("A", 2)}
	used := tracker.Detect("guild1")
	require.NotNil(t, used)
	assert.Equal(t, "A", used.Code)
}

func TestInviteTracker_DetectNoChange(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 5)}}
	tracker := NewInviteTracker(fetcher)
	tracker.Refresh("guild1")

	assert.Nil(t, tracker.Detect("guild1"))
}

func TestInviteTracker_DetectBrandNewInvite(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 5)}}
	tracker := NewInviteTracker(fetcher)
	tracker.Refresh("guild1")

	// An invite created and consumed between joins: absent from the cache,
	// so its count of 1 beats the implied 0.
	fetcher.invites = []*discordgo.Invite{invite("A", 5), invite("B", 1)}
	used := tracker.Detect("guild1")

	require.NotNil(t, used)
	assert.Equal(t, "B", used.Code)
}

func TestInviteTracker_DetectFetchErrorKeepsCache(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 5)}}
	tracker := NewInviteTracker(fetcher)
	tracker.Refresh("guild1")

	fetcher.err = errors.New("discord unavailable")
	assert.Nil(t, tracker.Detect("guild1"))

	// Once the platform recovers the old snapshot still diffs correctly
	fetcher.err = nil
	fetcher.invites = []*discordgo.Invite{invite("A", 6)}
	used := tracker.Detect("guild1")
	require.NotNil(t, used)
	assert.Equal(t, "A", used.Code)
}

func TestInviteTracker_RefreshIsIdempotent(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 5), invite("B", 2)}}
	tracker := NewInviteTracker(fetcher)

	tracker.Refresh("guild1")
	first := map[string]int{}
	for code, uses := range tracker.cache["guild1"] {
		first[code] = uses
	}

	tracker.Refresh("guild1")
	assert.Equal(t, first, tracker.cache["guild1"])
}

func TestInviteTracker_RefreshErrorLeavesCacheUntouched(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 5)}}
	tracker := NewInviteTracker(fetcher)
	tracker.Refresh("guild1")

	fetcher.err = errors.New("discord unavailable")
	tracker.Refresh("guild1")

	assert.Equal(t, map[string]int{"A": 5}, tracker.cache["guild1"])
}

func TestInviteTracker_IncrementalUpkeep(t *testing.T) {
	fetcher := &fakeInviteFetcher{invites: []*discordgo.Invite{invite("A", 5)}}
	tracker := NewInviteTracker(fetcher)
	tracker.Refresh("guild1")

	tracker.InviteCreated("guild1", "B", 0)
	assert.Equal(t, map[string]int{"A": 5, "B": 0}, tracker.cache["guild1"])

	tracker.InviteDeleted("guild1", "A")
	assert.Equal(t, map[string]int{"B": 0}, tracker.cache["guild1"])

	// A new invite landing in the cache via the create event is diffable
	fetcher.invites = []*discordgo.Invite{invite("B", 1)}
	used := tracker.Detect("guild1")
	require.NotNil(t, used)
	assert.Equal(t, "B", used.Code)
}

func TestInviteTracker_UpkeepIgnoresUnknownGuild(t *testing.T) {
	tracker := NewInviteTracker(&fakeInviteFetcher{})

	tracker.InviteCreated("guild1", "A", 0)
	tracker.InviteDeleted("guild1", "A")

	// No partial snapshot was created, so detection stays undetermined
	_, ok := tracker.cache["guild1"]
	assert.False(t, ok)
}
