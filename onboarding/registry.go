package onboarding

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"onboarder/models"
)

// Result describes the outcome of routing a DM message into a session.
type Result int

const (
	// ResultIgnored means no session was advanced: either the user has no
	// session, or the session has not been started yet.
	ResultIgnored Result = iota
	// ResultInvalid means the answer failed validation and the question is
	// re-asked.
	ResultInvalid
	// ResultNext means the answer was accepted and another question follows.
	ResultNext
	// ResultComplete means the last question was answered; the session is
	// ready for finalization.
	ResultComplete
)

// Registry owns all in-flight onboarding sessions, keyed by user ID.
// Sessions are in-memory only and have no expiry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*models.Session),
	}
}

// Create starts tracking a new session for the user in the created state,
// replacing any existing session (a re-join restarts the flow).
func (r *Registry) Create(userID, displayName, guildID, channelID, channelName string) *models.Session {
	session := &models.Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		DisplayName: displayName,
		GuildID:     guildID,
		ChannelID:   channelID,
		ChannelName: channelName,
		State:       models.SessionStateCreated,
		Answers:     make(map[string]string),
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.sessions[userID] = session
	count := len(r.sessions)
	r.mu.Unlock()

	log.WithFields(log.Fields{
		"sessionID":    session.ID,
		"userID":       userID,
		"guildID":      guildID,
		"channelName":  channelName,
		"sessionCount": count,
	}).Info("Onboarding session created")

	return session
}

// Get returns the session for the user, or nil if none exists
func (r *Registry) Get(userID string) *models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[userID]
}

// Remove drops the user's session from the registry
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Len returns the number of in-flight sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Start moves a created session into the in-progress state and returns the
// first question's prompt. Returns false without side effects when the user
// has no session or the session is already past the start gate.
func (r *Registry) Start(userID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok || session.State != models.SessionStateCreated {
		return "", false
	}

	session.State = models.SessionStateInProgress
	return Questions[session.Index].Prompt, true
}

// HandleMessage routes one DM message into the user's session. Messages for
// users with no session, or for sessions still awaiting the start button,
// are ignored. Valid answers advance the flow; invalid answers re-ask the
// current question with its fixed error text, with no retry limit.
func (r *Registry) HandleMessage(userID, raw string) (Result, string, *models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok || session.State != models.SessionStateInProgress {
		return ResultIgnored, "", nil
	}

	question := Questions[session.Index]
	answer := Sanitize(raw)
	if !question.Validate(answer) {
		return ResultInvalid, question.ErrorText, session
	}

	session.Answers[question.Field] = answer
	session.Index++

	if session.Index < len(Questions) {
		return ResultNext, Questions[session.Index].Prompt, session
	}

	session.State = models.SessionStateComplete
	log.WithFields(log.Fields{
		"sessionID": session.ID,
		"userID":    userID,
	}).Info("Onboarding questions complete")
	return ResultComplete, "", session
}
