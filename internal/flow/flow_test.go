package flow

import (
	"testing"

	"marketbot/core/telegram/state"
)

func TestAddProductHappyPath(t *testing.T) {
	f := NewAddProduct(state.NewMemoryManager())
	const userID int64 = 1

	if _, ok := f.PendingName(userID); ok {
		t.Fatal("no conversation yet, PendingName should fail")
	}

	f.Begin(userID)
	if !f.AwaitingName(userID) {
		t.Fatal("after Begin the flow should await a name")
	}

	f.RememberName(userID, "Milk 3.2%")
	if f.AwaitingName(userID) {
		t.Fatal("after RememberName the flow should no longer await a name")
	}
	name, ok := f.PendingName(userID)
	if !ok || name != "Milk 3.2%" {
		t.Fatalf("PendingName = (%q, %v), want (Milk 3.2%%, true)", name, ok)
	}

	f.Complete(userID)
	if _, ok := f.PendingName(userID); ok {
		t.Fatal("completed conversation should have no pending name")
	}
	if f.AwaitingName(userID) {
		t.Fatal("completed conversation should be idle")
	}
}

func TestAddProductRestartDiscardsProgress(t *testing.T) {
	f := NewAddProduct(state.NewMemoryManager())
	const userID int64 = 2

	f.Begin(userID)
	f.RememberName(userID, "Yogurt")

	// A second /add mid-dialog starts over.
	f.Begin(userID)
	if !f.AwaitingName(userID) {
		t.Fatal("restarted conversation should await a name")
	}
	if _, ok := f.PendingName(userID); ok {
		t.Fatal("restarted conversation should not keep the old name")
	}
}

func TestAddProductNameKeptVerbatim(t *testing.T) {
	f := NewAddProduct(state.NewMemoryManager())
	const userID int64 = 3

	f.Begin(userID)
	f.RememberName(userID, "  Cheddar  ")
	name, _ := f.PendingName(userID)
	if name != "  Cheddar  " {
		t.Fatalf("name = %q, want whitespace preserved", name)
	}
}

func TestAddProductUsersIndependent(t *testing.T) {
	f := NewAddProduct(state.NewMemoryManager())

	f.Begin(1)
	f.RememberName(1, "Bread")
	f.Begin(2)

	if name, ok := f.PendingName(1); !ok || name != "Bread" {
		t.Fatalf("user 1 pending name = (%q, %v), want (Bread, true)", name, ok)
	}
	if !f.AwaitingName(2) {
		t.Fatal("user 2 should await a name")
	}
}
