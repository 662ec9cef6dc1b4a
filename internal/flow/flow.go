package flow

import "marketbot/core/telegram/state"

// Dialog states for the two-step add-product conversation.
const (
	StateAwaitingName state.State = "awaiting_name"
	StateAwaitingDate state.State = "awaiting_date"
)

const tempProductName = "product_name"

// AddProduct drives the add-product conversation over a session manager.
// A chat has at most one conversation; starting a new one discards any
// half-finished predecessor.
type AddProduct struct {
	mgr state.Manager
}

// NewAddProduct builds the conversation driver.
func NewAddProduct(mgr state.Manager) *AddProduct {
	return &AddProduct{mgr: mgr}
}

// Begin starts a fresh conversation, dropping any previous progress.
func (f *AddProduct) Begin(userID int64) {
	f.mgr.Clear(userID)
	f.mgr.SetState(userID, StateAwaitingName)
}

// RememberName stores the captured product name and moves to date selection.
// The name is kept verbatim, whitespace and casing included.
func (f *AddProduct) RememberName(userID int64, name string) {
	f.mgr.SetTemp(userID, tempProductName, name)
	f.mgr.SetState(userID, StateAwaitingDate)
}

// PendingName returns the name captured earlier in the conversation.
// ok is false when the conversation is not waiting for a date.
func (f *AddProduct) PendingName(userID int64) (string, bool) {
	if f.mgr.GetState(userID) != StateAwaitingDate {
		return "", false
	}
	return f.mgr.GetTempString(userID, tempProductName)
}

// AwaitingName reports whether the conversation expects a product name next.
func (f *AddProduct) AwaitingName(userID int64) bool {
	return f.mgr.GetState(userID) == StateAwaitingName
}

// Complete ends the conversation and discards its data.
func (f *AddProduct) Complete(userID int64) {
	f.mgr.Clear(userID)
}
