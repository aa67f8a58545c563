package systems

import (
	"testing"
)

func TestCalendar_ScheduleAndDue(t *testing.T) {
	es := newTestEntities(3)
	cal := NewCalendar()

	cal.Schedule(400, es[0])
	cal.Schedule(400, es[1])
	cal.Schedule(500, es[2])

	due := cal.Due(400)
	if len(due) != 2 {
		t.Fatalf("Due(400) returned %d patches, want 2", len(due))
	}

	// The entry is cleared once collected
	if again := cal.Due(400); again != nil {
		t.Errorf("second Due(400) returned %d patches, want none", len(again))
	}

	if cal.Pending() != 1 {
		t.Errorf("Pending = %d after draining tick 400, want 1", cal.Pending())
	}
}

func TestCalendar_EmptyTick(t *testing.T) {
	cal := NewCalendar()
	if due := cal.Due(7); due != nil {
		t.Errorf("Due on an empty tick returned %v, want nil", due)
	}
}

func TestCalendar_Pending(t *testing.T) {
	es := newTestEntities(2)
	cal := NewCalendar()
	if cal.Pending() != 0 {
		t.Errorf("fresh calendar Pending = %d, want 0", cal.Pending())
	}
	cal.Schedule(10, es[0])
	cal.Schedule(20, es[1])
	if cal.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", cal.Pending())
	}
}
