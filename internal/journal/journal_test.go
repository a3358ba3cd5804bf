package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/grand-line/internal/engine"
	"github.com/talgya/grand-line/internal/market"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "market.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRosterRoundTrip(t *testing.T) {
	db := openTestDB(t)

	empty, err := db.LoadRoster()
	if err != nil {
		t.Fatalf("LoadRoster on fresh db: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("fresh db has %d characters, want 0", len(empty))
	}

	want := market.DefaultRoster()
	if err := db.SeedRoster(want); err != nil {
		t.Fatalf("SeedRoster: %v", err)
	}

	got, err := db.LoadRoster()
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d characters, want %d", len(got), len(want))
	}
	if got[0] != want[0] {
		t.Errorf("first entry = %+v, want %+v", got[0], want[0])
	}
	if got[10].Name != "Kaido" || got[10].Bounty != 4_611_100_000 {
		t.Errorf("entry 10 = %+v, want Kaido", got[10])
	}
}

func TestSeedRosterReplaces(t *testing.T) {
	db := openTestDB(t)

	if err := db.SeedRoster(market.DefaultRoster()); err != nil {
		t.Fatalf("SeedRoster: %v", err)
	}
	small := []market.RosterEntry{{ID: 1, Name: "Monkey D. Luffy", Crew: "Straw Hat Pirates", Bounty: 100, GrowthRate: 0.15}}
	if err := db.SeedRoster(small); err != nil {
		t.Fatalf("SeedRoster replace: %v", err)
	}

	got, err := db.LoadRoster()
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d characters after replace, want 1", len(got))
	}
}

func TestAppendAndRecent(t *testing.T) {
	db := openTestDB(t)

	first := engine.Entry{
		ID:     uuid.NewString(),
		Day:    100,
		Type:   engine.EntryArcTransition,
		Arc:    "Alabasta Saga",
		Detail: "Alabasta Saga",
		At:     time.Now().UTC(),
	}
	second := engine.Entry{
		ID:     uuid.NewString(),
		Day:    140,
		Type:   engine.EntryMajorEvent,
		Arc:    "Alabasta Saga",
		Detail: "EPIC BATTLE BEGINS",
		At:     time.Now().UTC(),
	}

	if err := db.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := db.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Day != 140 {
		t.Errorf("newest entry day = %d, want 140", entries[0].Day)
	}
	if entries[0].Detail != "EPIC BATTLE BEGINS" {
		t.Errorf("newest entry detail = %q", entries[0].Detail)
	}
	if entries[1].Type != engine.EntryArcTransition {
		t.Errorf("oldest entry type = %q, want arc transition", entries[1].Type)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	db := openTestDB(t)

	for day := 1; day <= 20; day++ {
		err := db.Append(engine.Entry{
			ID:   uuid.NewString(),
			Day:  day,
			Type: engine.EntryMajorEvent,
			Arc:  "East Blue Saga",
			At:   time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("Append day %d: %v", day, err)
		}
	}

	entries, err := db.Recent(5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	if entries[0].Day != 20 {
		t.Errorf("newest entry day = %d, want 20", entries[0].Day)
	}
}
