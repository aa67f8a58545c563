package telemetry

import "github.com/pthm-cable/savannah/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventGrazing
	EventKill
	EventMating
	EventStarved
	EventAgedOut
	EventEaten
)

var eventNames = [...]string{
	EventBirth:   "birth",
	EventGrazing: "grazing",
	EventKill:    "kill",
	EventMating:  "mating",
	EventStarved: "starved",
	EventAgedOut: "aged_out",
	EventEaten:   "eaten",
}

// String returns the event name used in CSV output.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalCSV writes the event type as its name.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType          `csv:"type"`
	Tick     int32              `csv:"tick"`
	EntityID uint32             `csv:"entity_id"`
	Species  components.Species `csv:"species"`

	// Optional fields depending on event type
	TargetID uint32  `csv:"target_id"` // victim for kill, mate for mating, mother for birth
	Amount   float32 `csv:"amount"`    // food gained (grazing, kill) or litter size (birth)
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
}

// NewBirthEvent creates a birth event for one newborn.
func NewBirthEvent(tick int32, childID, motherID uint32, species components.Species, x, y float64) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Species:  species,
		TargetID: motherID,
		X:        float32(x),
		Y:        float32(y),
	}
}

// NewGrazingEvent creates a grazing event (prey eating a grass patch).
func NewGrazingEvent(tick int32, preyID uint32, gain float64, x, y float64) Event {
	return Event{
		Type:     EventGrazing,
		Tick:     tick,
		EntityID: preyID,
		Species:  components.SpeciesPrey,
		Amount:   float32(gain),
		X:        float32(x),
		Y:        float32(y),
	}
}

// NewKillEvent creates a kill event (tiger eating a prey animal).
func NewKillEvent(tick int32, tigerID, victimID uint32, gain float64, x, y float64) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: tigerID,
		Species:  components.SpeciesTiger,
		TargetID: victimID,
		Amount:   float32(gain),
		X:        float32(x),
		Y:        float32(y),
	}
}

// NewMatingEvent creates a mating event (initiator impregnated the target).
func NewMatingEvent(tick int32, initiatorID, mateID uint32, species components.Species, x, y float64) Event {
	return Event{
		Type:     EventMating,
		Tick:     tick,
		EntityID: initiatorID,
		Species:  species,
		TargetID: mateID,
		X:        float32(x),
		Y:        float32(y),
	}
}

// NewDeathEvent creates a death event with the given cause.
func NewDeathEvent(typ EventType, tick int32, entityID uint32, species components.Species, x, y float64) Event {
	return Event{
		Type:     typ,
		Tick:     tick,
		EntityID: entityID,
		Species:  species,
		X:        float32(x),
		Y:        float32(y),
	}
}
