package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// Calendar schedules munched patches for regrowth at a future tick, so the
// world never polls every patch. A tick with no entries yields nothing.
type Calendar struct {
	due map[int][]ecs.Entity
}

// NewCalendar creates an empty regrowth calendar.
func NewCalendar() *Calendar {
	return &Calendar{due: make(map[int][]ecs.Entity)}
}

// Schedule appends a patch to the given tick's regrowth list.
func (c *Calendar) Schedule(tick int, e ecs.Entity) {
	c.due[tick] = append(c.due[tick], e)
}

// Due returns the patches scheduled for the given tick and clears the
// entry. Returns nil when nothing is due.
func (c *Calendar) Due(tick int) []ecs.Entity {
	entries, ok := c.due[tick]
	if !ok {
		return nil
	}
	delete(c.due, tick)
	return entries
}

// Pending returns the total number of scheduled regrowths.
func (c *Calendar) Pending() int {
	n := 0
	for _, entries := range c.due {
		n += len(entries)
	}
	return n
}
