package services

import (
	"context"
	"testing"
	"time"

	"github.com/shivangi00/e-business-card-generator/internal/models"
)

func newTestCardService(t *testing.T) *CardService {
	t.Helper()
	return NewCardService(t.TempDir())
}

func TestCardServiceCreateAndLoad(t *testing.T) {
	svc := newTestCardService(t)
	ctx := context.Background()

	profile := models.DefaultProfile()
	profile.Name = "Ada Lovelace"

	if err := svc.Create(ctx, "card1", profile, "user1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	card, err := svc.Load(ctx, "card1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if card.Profile.Name != "Ada Lovelace" {
		t.Errorf("loaded name = %q", card.Profile.Name)
	}
	if card.OwnerID != "user1" {
		t.Errorf("owner = %q", card.OwnerID)
	}
	if card.CreatedAt.IsZero() || card.UpdatedAt.IsZero() {
		t.Error("timestamps should be server-assigned")
	}
}

func TestCardServiceCreateRequiresOwner(t *testing.T) {
	svc := newTestCardService(t)

	err := svc.Create(context.Background(), "card1", models.DefaultProfile(), "")
	if err != ErrOwnerRequired {
		t.Errorf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestCardServiceCreateRejectsDuplicate(t *testing.T) {
	svc := newTestCardService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, "card1", models.DefaultProfile(), "user1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Create(ctx, "card1", models.DefaultProfile(), "user1"); err != ErrCardExists {
		t.Errorf("expected ErrCardExists, got %v", err)
	}
}

func TestCardServiceUpdateKeepsIdentity(t *testing.T) {
	svc := newTestCardService(t)
	ctx := context.Background()

	profile := models.DefaultProfile()
	if err := svc.Create(ctx, "card1", profile, "user1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := svc.Load(ctx, "card1")

	profile.Name = "Updated"
	if err := svc.Update(ctx, "card1", profile, "user1"); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := svc.Load(ctx, "card1")
	if after.Profile.Name != "Updated" {
		t.Errorf("profile not replaced: %q", after.Profile.Name)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Error("update must not touch createdAt")
	}
	if after.UpdatedAt.Before(before.UpdatedAt) {
		t.Error("update must bump updatedAt")
	}
}

func TestCardServiceUpdateOwnership(t *testing.T) {
	svc := newTestCardService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, "card1", models.DefaultProfile(), "user1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := svc.Update(ctx, "card1", models.DefaultProfile(), "intruder")
	if err != ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// The original document must be untouched.
	card, _ := svc.Load(ctx, "card1")
	if card.OwnerID != "user1" {
		t.Errorf("owner changed to %q", card.OwnerID)
	}
}

func TestCardServiceUpdateMissingCard(t *testing.T) {
	svc := newTestCardService(t)

	err := svc.Update(context.Background(), "ghost", models.DefaultProfile(), "user1")
	if err != ErrCardNotFound {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCardServiceAdoptsLegacyCard(t *testing.T) {
	svc := newTestCardService(t)
	ctx := context.Background()

	// Pre-auth documents have no owner; the first authenticated update
	// claims them.
	svc.cards["legacy"] = &models.Card{CardID: "legacy", Profile: models.DefaultProfile()}

	if err := svc.Update(ctx, "legacy", models.DefaultProfile(), "user1"); err != nil {
		t.Fatalf("update: %v", err)
	}
	card, _ := svc.Load(ctx, "legacy")
	if card.OwnerID != "user1" {
		t.Errorf("legacy card not adopted: owner %q", card.OwnerID)
	}
}

func TestCardServiceListByOwner(t *testing.T) {
	svc := newTestCardService(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"old", "mid", "new"} {
		if err := svc.Create(ctx, id, models.DefaultProfile(), "user1"); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := svc.Create(ctx, "other", models.DefaultProfile(), "user2"); err != nil {
		t.Fatalf("create other: %v", err)
	}

	cards, err := svc.ListByOwner(ctx, "user1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	want := []string{"new", "mid", "old"}
	for i, w := range want {
		if cards[i].CardID != w {
			t.Errorf("position %d: got %q, want %q", i, cards[i].CardID, w)
		}
	}

	empty, err := svc.ListByOwner(ctx, "nobody")
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty slice, got %v", empty)
	}
}

func TestCardServiceLoadReturnsCopy(t *testing.T) {
	svc := newTestCardService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, "card1", models.DefaultProfile(), "user1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	card, _ := svc.Load(ctx, "card1")
	card.Profile.Name = "mutated"

	again, _ := svc.Load(ctx, "card1")
	if again.Profile.Name == "mutated" {
		t.Error("Load leaked a shared profile")
	}
}
