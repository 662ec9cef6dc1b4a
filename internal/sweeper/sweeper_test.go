package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketbot/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSource struct {
	items   []model.Product
	deleted []primitive.ObjectID
	listErr error
	delErr  error
}

func (f *fakeSource) All(context.Context) ([]model.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Product, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeSource) Delete(_ context.Context, id primitive.ObjectID) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

type fakeNotifier struct {
	notified []model.Product
	err      error
	seen     chan struct{}
}

func (f *fakeNotifier) NotifyExpired(_ context.Context, p model.Product) error {
	if f.err != nil {
		return f.err
	}
	f.notified = append(f.notified, p)
	if f.seen != nil {
		select {
		case f.seen <- struct{}{}:
		default:
		}
	}
	return nil
}

func strptr(s string) *string { return &s }

func product(userID int64, name string, expiry time.Time) model.Product {
	e := model.NewExpiryDate(expiry)
	return model.Product{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Name:   strptr(name),
		Expiry: &e,
	}
}

func TestRunOnceNotifiesAndDeletesExpired(t *testing.T) {
	now := time.Date(2025, time.May, 10, 12, 0, 0, 0, time.Local)
	src := &fakeSource{items: []model.Product{
		product(1, "Milk", now.AddDate(0, 0, -1)),
		product(2, "Cheese", now.AddDate(0, 0, 3)),
	}}
	notes := &fakeNotifier{}
	s := New(src, notes, WithClock(func() time.Time { return now }))

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	if len(notes.notified) != 1 || *notes.notified[0].Name != "Milk" {
		t.Fatalf("notified %v, want only Milk", notes.notified)
	}
	if len(src.deleted) != 1 {
		t.Fatalf("deleted %d records, want 1", len(src.deleted))
	}
	if len(src.items) != 1 || *src.items[0].Name != "Cheese" {
		t.Fatalf("remaining items %v, want only Cheese", src.items)
	}
}

func TestRunOnceTreatsTodayAsExpired(t *testing.T) {
	now := time.Date(2025, time.May, 10, 8, 30, 0, 0, time.Local)
	src := &fakeSource{items: []model.Product{product(1, "Bread", now)}}
	notes := &fakeNotifier{}
	s := New(src, notes, WithClock(func() time.Time { return now }))

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notes.notified) != 1 {
		t.Fatal("product expiring today should be flagged")
	}
}

func TestRunOnceSkipsRecordsWithoutExpiry(t *testing.T) {
	src := &fakeSource{items: []model.Product{{
		ID:     primitive.NewObjectID(),
		UserID: 1,
		Name:   strptr("Mystery"),
	}}}
	notes := &fakeNotifier{}
	s := New(src, notes)

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(notes.notified) != 0 || len(src.deleted) != 0 {
		t.Fatal("record without expiry must be left alone")
	}
}

func TestRunOnceKeepsRecordWhenNotifyFails(t *testing.T) {
	now := time.Now()
	src := &fakeSource{items: []model.Product{product(1, "Milk", now.AddDate(0, 0, -1))}}
	notes := &fakeNotifier{err: errors.New("chat not found")}
	s := New(src, notes, WithClock(func() time.Time { return now }))

	err := s.RunOnce(context.Background())
	if err == nil {
		t.Fatal("RunOnce should surface the notify error")
	}
	if len(src.deleted) != 0 {
		t.Fatal("record must survive a failed notification")
	}
	if len(src.items) != 1 {
		t.Fatal("record must still be listed")
	}
}

func TestRunOnceToleratesScanFailure(t *testing.T) {
	src := &fakeSource{listErr: errors.New("connection reset")}
	s := New(src, &fakeNotifier{})

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("scan failure should not stop the loop, got %v", err)
	}
}

func TestRunSweepsImmediatelyBeforeFirstTick(t *testing.T) {
	now := time.Now()
	src := &fakeSource{items: []model.Product{product(1, "Milk", now.AddDate(0, 0, -1))}}
	notes := &fakeNotifier{seen: make(chan struct{}, 1)}
	s := New(src, notes, WithInterval(time.Hour), WithClock(func() time.Time { return now }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-notes.seen:
	case <-time.After(time.Second):
		t.Fatal("first pass did not run before the interval elapsed")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run after cancel = %v, want nil", err)
	}
	if len(notes.notified) != 1 {
		t.Fatalf("notified %d times, want 1", len(notes.notified))
	}
	if len(src.deleted) != 1 {
		t.Fatalf("deleted %d records, want 1", len(src.deleted))
	}
}

func TestRunHaltsPermanentlyOnNotifyError(t *testing.T) {
	now := time.Now()
	src := &fakeSource{items: []model.Product{product(1, "Milk", now.AddDate(0, 0, -1))}}
	notes := &fakeNotifier{err: errors.New("forbidden: bot was blocked")}
	s := New(src, notes, WithInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := s.Run(ctx)
	if err == nil {
		t.Fatal("Run should return the notify error")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("Run should have halted before the timeout")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := New(&fakeSource{}, &fakeNotifier{}, WithInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after cancel = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
