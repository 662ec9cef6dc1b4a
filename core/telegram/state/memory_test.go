package state

import "testing"

func TestMemoryManagerStateLifecycle(t *testing.T) {
	mgr := NewMemoryManager()
	const userID int64 = 42

	if got := mgr.GetState(userID); got != StateIdle {
		t.Fatalf("fresh user state = %q, want idle", got)
	}
	if mgr.InProgress(userID) {
		t.Fatal("fresh user should not be in progress")
	}

	mgr.SetState(userID, State("awaiting_name"))
	if got := mgr.GetState(userID); got != State("awaiting_name") {
		t.Fatalf("state = %q, want awaiting_name", got)
	}
	if !mgr.InProgress(userID) {
		t.Fatal("user with active state should be in progress")
	}

	// A second SetState replaces the previous step outright.
	mgr.SetState(userID, State("awaiting_date"))
	if got := mgr.GetState(userID); got != State("awaiting_date") {
		t.Fatalf("state after replace = %q, want awaiting_date", got)
	}

	mgr.Clear(userID)
	if got := mgr.GetState(userID); got != StateIdle {
		t.Fatalf("state after clear = %q, want idle", got)
	}
	if mgr.InProgress(userID) {
		t.Fatal("cleared user should not be in progress")
	}
}

func TestMemoryManagerTempData(t *testing.T) {
	mgr := NewMemoryManager()
	const userID int64 = 7

	if _, ok := mgr.GetTemp(userID, "product_name"); ok {
		t.Fatal("temp value should be absent before SetTemp")
	}

	mgr.SetTemp(userID, "product_name", "Milk")
	v, ok := mgr.GetTempString(userID, "product_name")
	if !ok || v != "Milk" {
		t.Fatalf("GetTempString = (%q, %v), want (Milk, true)", v, ok)
	}

	// Overwrite keeps last value.
	mgr.SetTemp(userID, "product_name", "Cheese")
	if v, _ := mgr.GetTempString(userID, "product_name"); v != "Cheese" {
		t.Fatalf("temp after overwrite = %q, want Cheese", v)
	}

	// Non-string values do not assert as string.
	mgr.SetTemp(userID, "count", 3)
	if _, ok := mgr.GetTempString(userID, "count"); ok {
		t.Fatal("GetTempString should fail for non-string value")
	}

	mgr.ClearTemp(userID, "product_name")
	if _, ok := mgr.GetTemp(userID, "product_name"); ok {
		t.Fatal("temp value should be gone after ClearTemp")
	}

	// Setting temp data alone must not mark the dialog in progress.
	if mgr.InProgress(userID) {
		t.Fatal("temp data without state should not be in progress")
	}
}

func TestMemoryManagerIsolatesUsers(t *testing.T) {
	mgr := NewMemoryManager()

	mgr.SetState(1, State("awaiting_name"))
	mgr.SetTemp(1, "product_name", "Yogurt")

	if got := mgr.GetState(2); got != StateIdle {
		t.Fatalf("other user state = %q, want idle", got)
	}
	if _, ok := mgr.GetTemp(2, "product_name"); ok {
		t.Fatal("other user should not see temp data")
	}

	mgr.Clear(2)
	if got := mgr.GetState(1); got != State("awaiting_name") {
		t.Fatalf("clearing user 2 affected user 1: state = %q", got)
	}
}
