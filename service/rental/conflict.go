package rental

import (
	"fmt"
	"strings"
	"time"

	rrepo "github.com/Macsarunrat/pink-rental/repository/rental"
)

// DateRange is a closed day interval. Ranges are used exactly as stored,
// even when End precedes Start.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses the inclusive test: a.Start <= b.End AND a.End >= b.Start.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

type Candidate = rrepo.Candidate
type AccessoryRef = rrepo.AccessoryRef

// ConflictReport describes the first rental blocking a booking.
type ConflictReport struct {
	RentalID     int64
	CustomerName string
	Range        DateRange
	Accessories  []AccessoryRef
}

// Message renders the admin-facing rejection, naming the blocked
// accessories, the blocking customer and the blocking range as day/month.
func (c *ConflictReport) Message() string {
	names := make([]string, 0, len(c.Accessories))
	for _, a := range c.Accessories {
		names = append(names, a.Name)
	}
	return fmt.Sprintf("%s already booked by %s (%s - %s)",
		strings.Join(names, ", "),
		c.CustomerName,
		c.Range.Start.Format("02/01"),
		c.Range.End.Format("02/01"),
	)
}

// FirstConflict returns a report for the first candidate rental that overlaps
// the range and claims any of the wanted accessories, or nil. An empty wanted
// set never conflicts.
func FirstConflict(rng DateRange, wanted []int64, others []Candidate) *ConflictReport {
	if len(wanted) == 0 {
		return nil
	}
	want := make(map[int64]bool, len(wanted))
	for _, id := range wanted {
		want[id] = true
	}

	for _, other := range others {
		if !rng.Overlaps(DateRange{Start: other.StartDate, End: other.EndDate}) {
			continue
		}
		var taken []AccessoryRef
		for _, a := range other.Accessories {
			if want[a.ID] {
				taken = append(taken, a)
			}
		}
		if len(taken) > 0 {
			return &ConflictReport{
				RentalID:     other.RentalID,
				CustomerName: other.CustomerName,
				Range:        DateRange{Start: other.StartDate, End: other.EndDate},
				Accessories:  taken,
			}
		}
	}
	return nil
}

// Conflicts returns the union of wanted accessory ids claimed by overlapping
// candidate rentals, in ascending order of first appearance.
func Conflicts(rng DateRange, wanted []int64, others []Candidate) []int64 {
	if len(wanted) == 0 {
		return nil
	}
	want := make(map[int64]bool, len(wanted))
	for _, id := range wanted {
		want[id] = true
	}

	seen := make(map[int64]bool)
	var out []int64
	for _, other := range others {
		if !rng.Overlaps(DateRange{Start: other.StartDate, End: other.EndDate}) {
			continue
		}
		for _, a := range other.Accessories {
			if want[a.ID] && !seen[a.ID] {
				seen[a.ID] = true
				out = append(out, a.ID)
			}
		}
	}
	return out
}

// Blacklist returns every accessory id claimed by a candidate rental
// overlapping the range, for disabling options in the selection UI.
func Blacklist(rng DateRange, others []Candidate) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, other := range others {
		if !rng.Overlaps(DateRange{Start: other.StartDate, End: other.EndDate}) {
			continue
		}
		for _, a := range other.Accessories {
			if !seen[a.ID] {
				seen[a.ID] = true
				out = append(out, a.ID)
			}
		}
	}
	return out
}
