package market

import "testing"

func TestDefaultRosterBuilds(t *testing.T) {
	chars, err := BuildRoster(DefaultRoster())
	if err != nil {
		t.Fatalf("default roster should build: %v", err)
	}
	if len(chars) != 17 {
		t.Errorf("got %d characters, want 17", len(chars))
	}
	for _, c := range chars {
		if c.CurrentPrice != 0.0 {
			t.Errorf("%s starts at %v, want exactly 0.0", c.Name, c.CurrentPrice)
		}
		if c.Volatility != DefaultVolatility {
			t.Errorf("%s volatility %v, want %v", c.Name, c.Volatility, DefaultVolatility)
		}
	}
}

func TestValidateRoster(t *testing.T) {
	cases := []struct {
		name    string
		entries []RosterEntry
	}{
		{"empty roster", nil},
		{"duplicate ids", []RosterEntry{
			{1, "Luffy", CrewStrawHats, 100, 0.1},
			{1, "Zoro", CrewStrawHats, 100, 0.1},
		}},
		{"empty name", []RosterEntry{{1, "", CrewStrawHats, 100, 0.1}}},
		{"negative bounty", []RosterEntry{{1, "Luffy", CrewStrawHats, -1, 0.1}}},
		{"zero growth rate", []RosterEntry{{1, "Luffy", CrewStrawHats, 100, 0}}},
		{"growth rate of one", []RosterEntry{{1, "Luffy", CrewStrawHats, 100, 1.0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateRoster(tc.entries); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestNewCharacterZeroBountyAllowed(t *testing.T) {
	c, err := NewCharacter(15, "Akainu", CrewMarines, 0, 0.16)
	if err != nil {
		t.Fatalf("admirals carry no bounty and must still be valid: %v", err)
	}
	if c.Bounty != 0 {
		t.Errorf("bounty = %d, want 0", c.Bounty)
	}
}
