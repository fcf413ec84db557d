package ids

import "github.com/segmentio/ksuid"

// New returns a sortable unique identifier for persisted rows.
func New() string {
	return ksuid.New().String()
}
