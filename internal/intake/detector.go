package intake

import (
	"sort"
	"strings"
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/intake/source"
)

// Event is one newly detected row, tagged with its synthetic timestamp.
type Event struct {
	Email          string     `json:"Email"`
	Body           string     `json:"Body"`
	Date           string     `json:"Date"`
	Time           string     `json:"Time"`
	AttachmentPath string     `json:"Attachment,omitempty"`
	Row            source.Row `json:"-"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Detector computes the rows present in the current source contents but
// absent from the previously observed snapshot. The snapshot is owned
// exclusively by the watcher goroutine; it is never shared.
type Detector struct {
	previous map[string]struct{}
	now      func() time.Time
}

// NewDetector creates a detector with an empty snapshot.
func NewDetector() *Detector {
	return &Detector{
		previous: map[string]struct{}{},
		now:      time.Now,
	}
}

// Diff returns the rows of curr whose field values match no row of the
// previous snapshot, then replaces the snapshot wholesale. Comparison
// is structural equality of the full row contents, not positional: a
// row that reverts to a previously seen value is not re-flagged.
//
// Each new row is stamped with the detection instant plus its row index
// in seconds, giving same-cycle events a strict total order without
// needing sub-second precision from the source.
func (d *Detector) Diff(curr []source.Row) []Event {
	base := d.now()
	next := make(map[string]struct{}, len(curr))

	var events []Event
	for index, row := range curr {
		fp := fingerprint(row)
		next[fp] = struct{}{}
		if _, seen := d.previous[fp]; seen {
			continue
		}
		stamp := base.Add(time.Duration(index) * time.Second)
		events = append(events, Event{
			Email:          row[source.ColEmail],
			Body:           row[source.ColBody],
			Date:           stamp.Format(dateLayout),
			Time:           stamp.Format(timeLayout),
			AttachmentPath: row[source.ColAttachment],
			Row:            row,
		})
	}

	d.previous = next
	return events
}

// fingerprint serializes a row into a stable key over its sorted
// field-value pairs.
func fingerprint(row source.Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\x1f')
		b.WriteString(row[k])
		b.WriteByte('\x1e')
	}
	return b.String()
}
