package intake

import (
	"testing"
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/intake/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(email, body string) source.Row {
	return source.Row{
		source.ColEmail: email,
		source.ColBody:  body,
	}
}

func TestDetectorFirstDiffReturnsAllRows(t *testing.T) {
	d := NewDetector()

	events := d.Diff([]source.Row{
		row("a@example.com", "order one"),
		row("b@example.com", "order two"),
	})

	require.Len(t, events, 2)
	assert.Equal(t, "a@example.com", events[0].Email)
	assert.Equal(t, "order one", events[0].Body)
	assert.Equal(t, "b@example.com", events[1].Email)
}

func TestDetectorUnchangedRowsProduceNoEvents(t *testing.T) {
	d := NewDetector()
	rows := []source.Row{
		row("a@example.com", "order one"),
		row("b@example.com", "order two"),
	}

	d.Diff(rows)
	events := d.Diff(rows)

	assert.Empty(t, events)
}

func TestDetectorFlagsOnlyAppendedRows(t *testing.T) {
	d := NewDetector()
	d.Diff([]source.Row{row("a@example.com", "order one")})

	events := d.Diff([]source.Row{
		row("a@example.com", "order one"),
		row("c@example.com", "order three"),
	})

	require.Len(t, events, 1)
	assert.Equal(t, "c@example.com", events[0].Email)
}

func TestDetectorFlagsEditedRowAsNew(t *testing.T) {
	d := NewDetector()
	d.Diff([]source.Row{row("a@example.com", "order one")})

	events := d.Diff([]source.Row{row("a@example.com", "order one, revised")})

	require.Len(t, events, 1)
	assert.Equal(t, "order one, revised", events[0].Body)
}

func TestDetectorComparisonIsNotPositional(t *testing.T) {
	d := NewDetector()
	d.Diff([]source.Row{
		row("a@example.com", "order one"),
		row("b@example.com", "order two"),
	})

	// Same contents, swapped positions
	events := d.Diff([]source.Row{
		row("b@example.com", "order two"),
		row("a@example.com", "order one"),
	})

	assert.Empty(t, events)
}

func TestDetectorSnapshotReplacedWholesale(t *testing.T) {
	d := NewDetector()
	d.Diff([]source.Row{row("a@example.com", "order one")})
	d.Diff([]source.Row{row("b@example.com", "order two")})

	// The first row left the snapshot when it left the source, so its
	// reappearance counts as new again
	events := d.Diff([]source.Row{row("a@example.com", "order one")})

	require.Len(t, events, 1)
	assert.Equal(t, "a@example.com", events[0].Email)
}

func TestDetectorStampsEventsByRowIndex(t *testing.T) {
	d := NewDetector()
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	d.now = func() time.Time { return base }

	events := d.Diff([]source.Row{
		row("a@example.com", "order one"),
		row("b@example.com", "order two"),
		row("c@example.com", "order three"),
	})

	require.Len(t, events, 3)
	assert.Equal(t, "2025-03-14", events[0].Date)
	assert.Equal(t, "09:30:00", events[0].Time)
	assert.Equal(t, "09:30:01", events[1].Time)
	assert.Equal(t, "09:30:02", events[2].Time)
}

// The index offset counts positions in the full current contents, so
// events appended behind existing rows start past zero.
func TestDetectorStampOffsetCountsFullContents(t *testing.T) {
	d := NewDetector()
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	d.now = func() time.Time { return base }

	d.Diff([]source.Row{row("a@example.com", "order one")})
	events := d.Diff([]source.Row{
		row("a@example.com", "order one"),
		row("b@example.com", "order two"),
	})

	require.Len(t, events, 1)
	assert.Equal(t, "09:30:01", events[0].Time)
}
