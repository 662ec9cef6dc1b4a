package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketbot/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductStore struct {
	items   []model.Product
	listErr error
}

func (f *fakeProductStore) Insert(_ context.Context, p model.Product) error {
	p.ID = primitive.NewObjectID()
	f.items = append(f.items, p)
	return nil
}

func (f *fakeProductStore) All(context.Context) ([]model.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeProductStore) Delete(context.Context, primitive.ObjectID) error { return nil }

func (f *fakeProductStore) Count(context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func strptr(s string) *string { return &s }

func TestAddStoresBothExpiryForms(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewProductService(store)

	day := time.Date(2025, time.July, 4, 15, 30, 0, 0, time.Local)
	if err := svc.Add(context.Background(), 42, "Milk", day); err != nil {
		t.Fatalf("Add: %v", err)
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
	if p.Expiry == nil {
		t.Fatal("expiry missing")
	}
	if p.Expiry.Human != "2025-07-04" {
		t.Errorf("human = %q, want 2025-07-04", p.Expiry.Human)
	}
	wantISO := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.Local).UnixMilli()
	if p.Expiry.ISO != wantISO {
		t.Errorf("iso = %d, want midnight %d", p.Expiry.ISO, wantISO)
	}
}

func TestListFormattedEmpty(t *testing.T) {
	svc := NewProductService(&fakeProductStore{})

	text, err := svc.ListFormatted(context.Background())
	if err != nil {
		t.Fatalf("ListFormatted: %v", err)
	}
	if text != "No products available." {
		t.Fatalf("text = %q", text)
	}
}

func TestListFormattedLinesAndFallbacks(t *testing.T) {
	expiry := model.NewExpiryDate(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local))
	store := &fakeProductStore{items: []model.Product{
		{UserID: 1, Name: strptr("Milk"), Expiry: &expiry},
		{UserID: 2, Expiry: &expiry},
		{UserID: 3, Name: strptr("Cheese")},
	}}
	svc := NewProductService(store)

	text, err := svc.ListFormatted(context.Background())
	if err != nil {
		t.Fatalf("ListFormatted: %v", err)
	}
	want := "Milk -> 2025-03-01\n" +
		"unknown product -> 2025-03-01\n" +
		"Cheese -> date unknown"
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestListFormattedPropagatesStoreError(t *testing.T) {
	svc := NewProductService(&fakeProductStore{listErr: errors.New("boom")})

	if _, err := svc.ListFormatted(context.Background()); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
