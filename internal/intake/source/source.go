package source

// Row is one record of the tabular source, keyed by header name.
type Row map[string]string

// Well-known column names of the inbound email sheet.
const (
	ColEmail      = "Email"
	ColBody       = "Body"
	ColAttachment = "Attachment"
)

// Reader returns the current full contents of a tabular source: one
// string-keyed row per non-empty record below the header. A read error
// means the source is temporarily unreadable; callers skip the cycle
// and keep their previous snapshot.
type Reader interface {
	Read() ([]Row, error)
}

// Empty reports whether every cell of the row is blank.
func (r Row) Empty() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}
