package engine

import "time"

// EventKind enumerates the major market events a tick can trigger. String
// values are the headlines broadcast to sinks.
type EventKind int

const (
	EventDevilFruitAwakening EventKind = iota
	EventEpicBattle
	EventNewEmperor
	EventBountyUpdate
	EventArcClimax
	EventPowerUp

	numEventKinds
)

func (k EventKind) String() string {
	switch k {
	case EventDevilFruitAwakening:
		return "DEVIL FRUIT AWAKENING"
	case EventEpicBattle:
		return "EPIC BATTLE BEGINS"
	case EventNewEmperor:
		return "NEW EMPEROR REVEALED"
	case EventBountyUpdate:
		return "BOUNTY UPDATE"
	case EventArcClimax:
		return "MAJOR ARC CLIMAX"
	case EventPowerUp:
		return "POWER-UP UNLOCKED"
	default:
		return "UNKNOWN EVENT"
	}
}

// Entry types recorded to the journal.
const (
	EntryMajorEvent    = "major_event"
	EntryArcTransition = "arc_transition"
)

// Entry is a notable market occurrence: a stochastic major event or a story
// arc transition.
type Entry struct {
	ID     string    `json:"id"`
	Day    int       `json:"day"`
	Type   string    `json:"type"`
	Arc    string    `json:"arc"`
	Detail string    `json:"detail"`
	At     time.Time `json:"at"`
}

// Recorder receives journal entries. The engine never blocks its tick on a
// recorder error; failures are logged and the tick proceeds.
type Recorder interface {
	Append(Entry) error
}
