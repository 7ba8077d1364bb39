package intake

import (
	"encoding/json"
	"fmt"
	"os"
)

// The batch staging file holds the cycle's newly detected rows while
// they are being dispatched. It is removed unconditionally when the
// batch finishes, including on error, so no stale batch file survives
// a cycle.

// WriteBatch writes the staging file for one event batch.
func WriteBatch(path string, events []Event) error {
	data, err := json.MarshalIndent(events, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	return nil
}

// RemoveBatch deletes the staging file if present.
func RemoveBatch(path string) {
	if _, err := os.Stat(path); err == nil {
		os.Remove(path)
	}
}
