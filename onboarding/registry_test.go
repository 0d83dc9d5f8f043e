package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarder/models"
)

func TestRegistry_MessageWithoutSession_Ignored(t *testing.T) {
	registry := NewRegistry()

	result, reply, session := registry.HandleMessage("user1", "hello")

	assert.Equal(t, ResultIgnored, result)
	assert.Empty(t, reply)
	assert.Nil(t, session)
}

func TestRegistry_MessageBeforeStart_Ignored(t *testing.T) {
	registry := NewRegistry()
	registry.Create("user1", "Jane", "guild1", "chan1", "batch-42")

	result, reply, _ := registry.HandleMessage("user1", "Jane Doe")

	assert.Equal(t, ResultIgnored, result)
	assert.Empty(t, reply)

	session := registry.Get("user1")
	require.NotNil(t, session)
	assert.Equal(t, models.SessionStateCreated, session.State)
	assert.Equal(t, 0, session.Index)
	assert.Empty(t, session.Answers)
}

func TestRegistry_StartOpensQuestionFlow(t *testing.T) {
	registry := NewRegistry()
	registry.Create("user1", "Jane", "guild1", "chan1", "batch-42")

	prompt, ok := registry.Start("user1")

	assert.True(t, ok)
	assert.Equal(t, Questions[0].Prompt, prompt)
	assert.Equal(t, models.SessionStateInProgress, registry.Get("user1").State)

	// Pressing start twice is a no-op
	_, ok = registry.Start("user1")
	assert.False(t, ok)
}

func TestRegistry_StartWithoutSession(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Start("user1")

	assert.False(t, ok)
}

func TestRegistry_InvalidAnswerReasksQuestion(t *testing.T) {
	registry := NewRegistry()
	registry.Create("user1", "Jane", "guild1", "chan1", "batch-42")
	registry.Start("user1")

	result, reply, session := registry.HandleMessage("user1", "7")

	assert.Equal(t, ResultInvalid, result)
	assert.Equal(t, Questions[0].ErrorText, reply)
	assert.Equal(t, 0, session.Index)
	assert.Empty(t, session.Answers)

	// Retries are unlimited
	result, _, _ = registry.HandleMessage("user1", "x")
	assert.Equal(t, ResultInvalid, result)

	result, _, _ = registry.HandleMessage("user1", "Jane Doe")
	assert.Equal(t, ResultNext, result)
}

func TestRegistry_FullQuestionFlow(t *testing.T) {
	registry := NewRegistry()
	registry.Create("user1", "Jane", "guild1", "chan1", "batch-42")
	registry.Start("user1")

	result, reply, _ := registry.HandleMessage("user1", "  Jane Doe  ")
	assert.Equal(t, ResultNext, result)
	assert.Equal(t, Questions[1].Prompt, reply)

	result, reply, _ = registry.HandleMessage("user1", "jane@scaler.com")
	assert.Equal(t, ResultNext, result)
	assert.Equal(t, Questions[2].Prompt, reply)

	result, reply, session := registry.HandleMessage("user1", "999-888-7777 ext")
	assert.Equal(t, ResultComplete, result)
	assert.Empty(t, reply)

	require.NotNil(t, session)
	assert.Equal(t, models.SessionStateComplete, session.State)
	assert.Equal(t, len(Questions), session.Index)
	assert.Equal(t, "Jane Doe", session.Answers["name"]) // sanitized
	assert.Equal(t, "jane@scaler.com", session.Answers["email"])
	assert.Equal(t, "999-888-7777 ext", session.Answers["phone"])

	// A completed session no longer consumes messages
	result, _, _ = registry.HandleMessage("user1", "anything")
	assert.Equal(t, ResultIgnored, result)
}

func TestRegistry_CreateReplacesExistingSession(t *testing.T) {
	registry := NewRegistry()
	first := registry.Create("user1", "Jane", "guild1", "chan1", "batch-42")
	registry.Start("user1")

	second := registry.Create("user1", "Jane", "guild1", "chan2", "batch-43")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.SessionStateCreated, registry.Get("user1").State)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_Remove(t *testing.T) {
	registry := NewRegistry()
	registry.Create("user1", "Jane", "guild1", "chan1", "batch-42")
	assert.Equal(t, 1, registry.Len())

	registry.Remove("user1")

	assert.Nil(t, registry.Get("user1"))
	assert.Equal(t, 0, registry.Len())

	result, _, _ := registry.HandleMessage("user1", "hello")
	assert.Equal(t, ResultIgnored, result)
}
