package bot

import (
	"context"
	"fmt"
	"testing"

	"marketbot/core/telegram/state"
	"marketbot/internal/flow"
	"marketbot/internal/model"
	"marketbot/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
	tele "gopkg.in/telebot.v4"
)

type fakeProductStore struct {
	items []model.Product
}

func (f *fakeProductStore) Insert(_ context.Context, p model.Product) error {
	p.ID = primitive.NewObjectID()
	f.items = append(f.items, p)
	return nil
}

func (f *fakeProductStore) All(context.Context) ([]model.Product, error) {
	return f.items, nil
}

func (f *fakeProductStore) Delete(context.Context, primitive.ObjectID) error { return nil }

func (f *fakeProductStore) Count(context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

// botContext implements the slice of tele.Context the dialog handlers touch;
// anything else panics on the embedded nil interface.
type botContext struct {
	tele.Context
	sender *tele.User
	text   string
	cb     *tele.Callback
	store  map[string]interface{}
	sent   []string
	edited []string
}

func newBotContext(userID int64) *botContext {
	return &botContext{
		sender: &tele.User{ID: userID},
		store:  map[string]interface{}{},
	}
}

func (c *botContext) Sender() *tele.User { return c.sender }

func (c *botContext) Chat() *tele.Chat { return &tele.Chat{ID: c.sender.ID} }

func (c *botContext) Update() tele.Update { return tele.Update{ID: 1} }

func (c *botContext) Get(key string) interface{} { return c.store[key] }

func (c *botContext) Set(key string, v interface{}) { c.store[key] = v }

func (c *botContext) Text() string { return c.text }

func (c *botContext) Callback() *tele.Callback { return c.cb }

func (c *botContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, fmt.Sprint(what))
	return nil
}

func (c *botContext) Reply(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, fmt.Sprint(what))
	return nil
}

func (c *botContext) EditOrSend(what interface{}, _ ...interface{}) error {
	c.edited = append(c.edited, fmt.Sprint(what))
	return nil
}

func dayCallback(day string) *tele.Callback {
	return &tele.Callback{Data: "\fcal_day|" + day}
}

func newTestHandlers() (*Handlers, *fakeProductStore, state.Manager) {
	store := &fakeProductStore{}
	mgr := state.NewMemoryManager()
	h := &Handlers{
		Flow:     flow.NewAddProduct(mgr),
		Products: service.NewProductService(store),
	}
	return h, store, mgr
}

func TestAddFlowHappyPath(t *testing.T) {
	h, store, mgr := newTestHandlers()
	c := newBotContext(42)

	if err := h.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != promptName {
		t.Fatalf("sent %v, want the name prompt", c.sent)
	}

	c.text = "Milk"
	if err := h.ReceiveName(c); err != nil {
		t.Fatalf("ReceiveName: %v", err)
	}

	c.cb = dayCallback("2025-01-01")
	if err := h.CalendarDay(c); err != nil {
		t.Fatalf("CalendarDay: %v", err)
	}

	if len(store.items) != 1 {
		t.Fatalf("stored %d products, want 1", len(store.items))
	}
	p := store.items[0]
	if p.UserID != 42 {
		t.Errorf("user_id = %d, want 42", p.UserID)
	}
	if p.Name == nil || *p.Name != "Milk" {
		t.Errorf("name = %v, want Milk", p.Name)
	}
	if p.Expiry == nil || p.Expiry.Human != "2025-01-01" {
		t.Errorf("expiry = %v, want 2025-01-01", p.Expiry)
	}
	if mgr.InProgress(42) {
		t.Fatal("session must be cleared after completion")
	}
	if len(c.edited) != 1 {
		t.Fatalf("edited %v, want one saved confirmation", c.edited)
	}
}

func TestCalendarDayIgnoresStaleTap(t *testing.T) {
	h, store, _ := newTestHandlers()
	c := newBotContext(42)
	c.cb = dayCallback("2025-01-01")

	if err := h.CalendarDay(c); err != nil {
		t.Fatalf("CalendarDay: %v", err)
	}

	if len(store.items) != 0 {
		t.Fatal("a stale tap must not create a product")
	}
	if len(c.sent) != 1 || c.sent[0] != dialogExpiredReply {
		t.Fatalf("sent %v, want the dialog-expired reply", c.sent)
	}
	if len(c.edited) != 0 {
		t.Fatal("a stale tap must not edit the calendar message")
	}
}

func TestCalendarDayDuplicateTapInsertsOnce(t *testing.T) {
	h, store, _ := newTestHandlers()
	c := newBotContext(42)

	h.Flow.Begin(42)
	h.Flow.RememberName(42, "Milk")

	c.cb = dayCallback("2025-01-01")
	if err := h.CalendarDay(c); err != nil {
		t.Fatalf("CalendarDay: %v", err)
	}
	if err := h.CalendarDay(c); err != nil {
		t.Fatalf("CalendarDay again: %v", err)
	}

	if len(store.items) != 1 {
		t.Fatalf("stored %d products, want exactly 1", len(store.items))
	}
	if c.sent[len(c.sent)-1] != dialogExpiredReply {
		t.Fatalf("sent %v, duplicate tap should get the dialog-expired reply", c.sent)
	}
}

func TestCalendarDayRejectsBadPayload(t *testing.T) {
	h, store, _ := newTestHandlers()
	c := newBotContext(42)

	h.Flow.Begin(42)
	h.Flow.RememberName(42, "Milk")

	c.cb = dayCallback("not-a-date")
	if err := h.CalendarDay(c); err != nil {
		t.Fatalf("CalendarDay: %v", err)
	}

	if len(store.items) != 0 {
		t.Fatal("a malformed payload must not create a product")
	}
	if len(c.sent) != 1 || c.sent[0] != dialogExpiredReply {
		t.Fatalf("sent %v, want the dialog-expired reply", c.sent)
	}
}
