package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
)

func TestMemStoreDuplicateEmail(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	u := model.UserInput{Email: "a@x.com", Fam: "Pupkin", Name: "Vasily", Otc: "Ivanovich", Phone: "1"}
	if _, err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := store.CreateUser(ctx, u)
	if !errors.Is(err, ErrEntityCreate) {
		t.Fatalf("expected ErrEntityCreate for duplicate email, got %v", err)
	}
}

func TestMemStoreWithinTxRollsBack(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(g Gateway) error {
		if _, err := g.CreateUser(ctx, model.UserInput{Email: "a@x.com", Fam: "P", Name: "V", Otc: "I", Phone: "1"}); err != nil {
			return err
		}
		if _, err := g.CreateCoords(ctx, model.CoordsInput{Latitude: 1, Longitude: 2, Height: 3}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := store.UserByEmail(ctx, "a@x.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected user write to be rolled back, got %v", err)
	}
	if ok, _ := store.CoordsExists(ctx, 1); ok {
		t.Fatal("expected coords write to be rolled back")
	}
}
