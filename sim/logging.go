package sim

import (
	"fmt"
	"io"

	"github.com/pthm-cable/savannah/components"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogWorldState logs a population summary for the current tick.
func (w *World) LogWorldState() {
	var preyFood, tigerFood float64
	var pregnant int

	query := w.animalFilter.Query()
	for query.Next() {
		_, an := query.Get()
		if an.Dead {
			continue
		}
		if an.Species == components.SpeciesTiger {
			tigerFood += an.Food
		} else {
			preyFood += an.Food
		}
		if an.Pregnancy > 0 {
			pregnant++
		}
	}

	avgPrey, avgTiger := 0.0, 0.0
	if w.preyCount > 0 {
		avgPrey = preyFood / float64(w.preyCount)
	}
	if w.tigerCount > 0 {
		avgTiger = tigerFood / float64(w.tigerCount)
	}

	Logf("=== Tick %d ===", w.tick)
	Logf("Prey: %d (food: %.1f avg), Tigers: %d (food: %.1f avg)",
		w.preyCount, avgPrey, w.tigerCount, avgTiger)
	Logf("Pregnant: %d, Grass: %.0f%%, Regrowth pending: %d",
		pregnant, w.GrassCoverage()*100, w.calendar.Pending())
	Logf("")
}
