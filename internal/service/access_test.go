package service

import (
	"context"
	"errors"
	"testing"

	"marketbot/internal/model"
)

type fakeUserStore struct {
	listed    map[int64]bool
	existsErr error
	upserted  []model.User
}

func (f *fakeUserStore) Exists(_ context.Context, userID int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.listed[userID], nil
}

func (f *fakeUserStore) Upsert(_ context.Context, u model.User) error {
	f.upserted = append(f.upserted, u)
	return nil
}

func (f *fakeUserStore) Count(context.Context) (int64, error) {
	return int64(len(f.listed)), nil
}

func TestAllowedForListedUser(t *testing.T) {
	svc := NewAccessService(&fakeUserStore{listed: map[int64]bool{42: true}})

	ok, err := svc.Allowed(context.Background(), 42)
	if err != nil {
		t.Fatalf("Allowed: %v", err)
	}
	if !ok {
		t.Fatal("listed user must be allowed")
	}
}

func TestAllowedDeniesUnlistedUserWithoutMutation(t *testing.T) {
	store := &fakeUserStore{listed: map[int64]bool{42: true}}
	svc := NewAccessService(store)

	ok, err := svc.Allowed(context.Background(), 7)
	if err != nil {
		t.Fatalf("Allowed: %v", err)
	}
	if ok {
		t.Fatal("unlisted user must be denied")
	}
	if len(store.upserted) != 0 {
		t.Fatal("an access check must not create allow-list records")
	}
}

func TestAllowedPropagatesStoreError(t *testing.T) {
	svc := NewAccessService(&fakeUserStore{existsErr: errors.New("timeout")})

	ok, err := svc.Allowed(context.Background(), 42)
	if err == nil {
		t.Fatal("expected store error to propagate")
	}
	if ok {
		t.Fatal("a failed lookup must not grant access")
	}
}

func TestGrantUpsertsUser(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAccessService(store)

	if err := svc.Grant(context.Background(), model.User{ID: 42, IsAdmin: true}); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if len(store.upserted) != 1 || store.upserted[0].ID != 42 {
		t.Fatalf("upserted %v, want user 42", store.upserted)
	}
}
