package narrative

import "testing"

func TestAdvanceOneArcPerCall(t *testing.T) {
	tl, err := NewTimeline(DefaultArcs(), 100)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}

	if tl.Advance(99) {
		t.Error("advanced before the first boundary")
	}
	if !tl.Advance(100) {
		t.Error("did not advance at day 100")
	}
	if tl.Index() != 1 {
		t.Errorf("index = %d, want 1", tl.Index())
	}

	// Same day again: the next boundary is 200, no transition.
	if tl.Advance(100) {
		t.Error("advanced twice for the same boundary")
	}

	// A faraway day still advances by exactly one arc per call.
	if !tl.Advance(1_000) {
		t.Error("did not advance at day 1000")
	}
	if tl.Index() != 2 {
		t.Errorf("index = %d, want 2", tl.Index())
	}
}

func TestIndexMonotonicAndBounded(t *testing.T) {
	arcs := DefaultArcs()
	tl, err := NewTimeline(arcs, 100)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}

	prev := tl.Index()
	for day := 0; day < 10_000; day += 7 {
		tl.Advance(day)
		idx := tl.Index()
		if idx < prev {
			t.Fatalf("index decreased: %d -> %d at day %d", prev, idx, day)
		}
		if idx > len(arcs)-1 {
			t.Fatalf("index %d exceeds last arc %d", idx, len(arcs)-1)
		}
		prev = idx
	}

	if !tl.Terminal() {
		t.Errorf("timeline not terminal after 10000 days, index %d", tl.Index())
	}
	// Terminal state never transitions again.
	if tl.Advance(1_000_000) {
		t.Error("terminal timeline advanced")
	}
}

func TestTimelineValidation(t *testing.T) {
	if _, err := NewTimeline(nil, 100); err == nil {
		t.Error("expected error for empty arc list")
	}
	if _, err := NewTimeline(DefaultArcs(), 0); err == nil {
		t.Error("expected error for zero days per arc")
	}
	if _, err := NewTimeline([]Arc{{Name: "", Multiplier: 1.0}}, 100); err == nil {
		t.Error("expected error for unnamed arc")
	}
	if _, err := NewTimeline([]Arc{{Name: "X", Multiplier: 0.5}}, 100); err == nil {
		t.Error("expected error for multiplier below 1.0")
	}
}

func TestBonusMultiplier(t *testing.T) {
	arcs := DefaultArcs()
	bonuses := DefaultBonuses()
	if err := bonuses.Validate(arcs); err != nil {
		t.Fatalf("default bonuses should validate: %v", err)
	}

	wano := Arc{Name: "Wano Country Saga", Multiplier: 4.0}
	if got := bonuses.Multiplier(wano, "Monkey D. Luffy"); got != 12.0 {
		t.Errorf("Luffy in Wano = %v, want 12.0", got)
	}
	if got := bonuses.Multiplier(wano, "Kaido"); got != 10.0 {
		t.Errorf("Kaido in Wano = %v, want 10.0", got)
	}
	if got := bonuses.Multiplier(wano, "Nami"); got != 4.0 {
		t.Errorf("Nami in Wano = %v, want arc base 4.0", got)
	}
}

func TestBonusTieBreakTakesMaximum(t *testing.T) {
	arc := Arc{Name: "Final Saga", Multiplier: 5.0}
	table := BonusTable{
		{"Final Saga", "Monkey D. Luffy", 2.0},
		{"Final Saga", "Monkey D. Luffy", 3.0},
		{"Final Saga", "Monkey D. Luffy", 2.5},
	}
	if got := table.Multiplier(arc, "Monkey D. Luffy"); got != 15.0 {
		t.Errorf("overlapping bonuses = %v, want max bonus applied (15.0)", got)
	}
}

func TestBonusValidation(t *testing.T) {
	arcs := DefaultArcs()

	bad := BonusTable{{"Skypiea Saga", "Enel", 2.0}}
	if err := bad.Validate(arcs); err == nil {
		t.Error("expected error for unknown arc")
	}

	bad = BonusTable{{"Final Saga", "", 2.0}}
	if err := bad.Validate(arcs); err == nil {
		t.Error("expected error for empty character")
	}

	bad = BonusTable{{"Final Saga", "Monkey D. Luffy", 0.5}}
	if err := bad.Validate(arcs); err == nil {
		t.Error("expected error for factor below 1.0")
	}
}
