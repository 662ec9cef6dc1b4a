package middleware

import (
	"context"
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type fakeGuard struct {
	allowed bool
	err     error
	asked   []int64
}

func (g *fakeGuard) Allowed(_ context.Context, userID int64) (bool, error) {
	g.asked = append(g.asked, userID)
	return g.allowed, g.err
}

// guardContext implements just enough of tele.Context for the access
// middleware; anything else panics on the embedded nil interface.
type guardContext struct {
	tele.Context
	sender *tele.User
	store  map[string]interface{}
}

func newGuardContext(userID int64) *guardContext {
	return &guardContext{
		sender: &tele.User{ID: userID},
		store:  map[string]interface{}{},
	}
}

func (c *guardContext) Sender() *tele.User { return c.sender }

func (c *guardContext) Chat() *tele.Chat {
	if c.sender == nil {
		return nil
	}
	return &tele.Chat{ID: c.sender.ID}
}

func (c *guardContext) Update() tele.Update { return tele.Update{ID: 1} }

func (c *guardContext) Get(key string) interface{} { return c.store[key] }

func (c *guardContext) Set(key string, v interface{}) { c.store[key] = v }

func runAccess(t *testing.T, c tele.Context, guard Guard) (nextCalls, rejectCalls int) {
	t.Helper()
	mw := AccessMiddleware(AccessOptions{
		Guard:    guard,
		OnReject: func(tele.Context) error { rejectCalls++; return nil },
	})
	next := func(tele.Context) error { nextCalls++; return nil }
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return nextCalls, rejectCalls
}

func TestAccessMiddlewareAllowsListedUser(t *testing.T) {
	guard := &fakeGuard{allowed: true}

	next, reject := runAccess(t, newGuardContext(42), guard)
	if next != 1 {
		t.Fatalf("next called %d times, want 1", next)
	}
	if reject != 0 {
		t.Fatalf("reject called %d times, want 0", reject)
	}
	if len(guard.asked) != 1 || guard.asked[0] != 42 {
		t.Fatalf("guard asked about %v, want [42]", guard.asked)
	}
}

func TestAccessMiddlewareRejectsUnlistedUser(t *testing.T) {
	next, reject := runAccess(t, newGuardContext(7), &fakeGuard{allowed: false})
	if next != 0 {
		t.Fatal("denied user must never reach the handler")
	}
	if reject != 1 {
		t.Fatalf("reject called %d times, want 1", reject)
	}
}

func TestAccessMiddlewareTreatsGuardErrorAsDenial(t *testing.T) {
	guard := &fakeGuard{allowed: true, err: errors.New("connection reset")}

	next, reject := runAccess(t, newGuardContext(7), guard)
	if next != 0 {
		t.Fatal("a failed check must not let the update through")
	}
	if reject != 1 {
		t.Fatalf("reject called %d times, want 1", reject)
	}
}

func TestAccessMiddlewareDropsUpdatesWithoutSender(t *testing.T) {
	c := &guardContext{store: map[string]interface{}{}}
	guard := &fakeGuard{allowed: true}

	next, reject := runAccess(t, c, guard)
	if next != 0 || reject != 0 {
		t.Fatal("sender-less update must be dropped silently")
	}
	if len(guard.asked) != 0 {
		t.Fatal("guard must not be consulted without a sender")
	}
}
