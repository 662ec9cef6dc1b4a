package state

import tele "gopkg.in/telebot.v4"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores conversation state and temporary data for a user.
type Session struct {
	State    State
	TempData map[string]interface{}
}

// Manager orchestrates user sessions and FSM state transitions.
type Manager interface {
	// SetState replaces the user's dialog state, creating a session if needed.
	SetState(userID int64, st State)
	GetState(userID int64) State

	SetTemp(userID int64, key string, value interface{})
	GetTemp(userID int64, key string) (interface{}, bool)
	GetTempString(userID int64, key string) (string, bool)
	ClearTemp(userID int64, key string)

	// Clear removes the entire session for a user, state and temp data alike.
	Clear(userID int64)

	// InProgress reports whether the user has an active dialog state.
	InProgress(userID int64) bool

	// ManagerHandler dispatches the incoming update to the handler
	// registered for the user's current state.
	ManagerHandler(c tele.Context) error
}
