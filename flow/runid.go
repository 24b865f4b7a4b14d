package flow

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// newRunID mints a lexicographically sortable, time-prefixed run
// correlation id (§5.1 of the expanded spec), used to tag every emitted
// Event and OpenTelemetry span for one Execute call.
func newRunID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
