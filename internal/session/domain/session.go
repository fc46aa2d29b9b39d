package domain

import (
	"encoding/json"
	"time"
)

// Session is one in-flight setup journey: an opaque id plus the journey's
// document, stored whole and rewritten whole on every mutation.
//
// There is no locking or versioning on the document; concurrent writes to the
// same session are last-write-wins. Setup journeys are driven by a single
// operator working one page at a time, so this is accepted rather than guarded.
type Session struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
