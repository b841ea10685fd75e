package schedule

import (
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

const defaultConflictHorizon = 366

// ConflictHorizon is how many days past the later of two anchors recurring
// events are compared.
var ConflictHorizon = defaultConflictHorizon

// Conflict is an advisory overlap between an event and another one.
type Conflict struct {
	Event model.Event `json:"event"`
	// On is the first date both events take place.
	On model.Date `json:"on"`
}

// Reschedule returns ev moved to newDate. Only the anchor date changes, so
// every derived occurrence of a recurring event moves with it.
func Reschedule(ev model.Event, newDate model.Date) model.Event {
	out := ev.Clone()
	out.Date = newDate
	return out
}

// DetectConflicts returns the other events that share a date with ev and
// whose [start, end) times overlap it. The relation is symmetric. Cancelled
// events never conflict. The result is advisory and never blocks a change.
func DetectConflicts(ev model.Event, events []model.Event) []Conflict {
	var out []Conflict
	if ev.Status == model.StatusCancelled {
		return out
	}
	for _, other := range events {
		if other.ID == ev.ID || other.Status == model.StatusCancelled {
			continue
		}
		if !timesOverlap(ev, other) {
			continue
		}
		if on, ok := firstSharedDate(ev, other); ok {
			out = append(out, Conflict{Event: other, On: on})
		}
	}
	return out
}

// timesOverlap compares half-open intervals: a.start < b.end && b.start < a.end.
// Zero-length events (deadlines) therefore never overlap anything.
func timesOverlap(a, b model.Event) bool {
	return a.StartTime < b.EndTime && b.StartTime < a.EndTime
}

// firstSharedDate finds the earliest date on which both events occur. The
// search window depends only on the pair, which keeps the result symmetric.
func firstSharedDate(a, b model.Event) (model.Date, bool) {
	from := a.Date
	if b.Date.After(from) {
		from = b.Date
	}
	to := from
	if a.Recurring && b.Recurring {
		to = from.AddDays(ConflictHorizon)
	}
	for d := range Occurrences(a, from, to) {
		if OccursOn(b, d) {
			return d, true
		}
	}
	return model.Date{}, false
}
