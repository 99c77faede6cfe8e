package payments

import (
	"fmt"
	"time"

	"groovava/utils"
)

// referencePrefix tags every payment attempt originating from this app.
const referencePrefix = "groovava"

// BuildReference produces a reference unique per purchase attempt:
// prefix, event id, millisecond timestamp and a random base36 suffix.
// Uniqueness is probabilistic; the gateway rejects a duplicate reference,
// so it stays the final arbiter.
func BuildReference(eventID string) string {
	suffix, err := utils.RandomBase36(6)
	if err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back
		// to a timestamp-only suffix rather than aborting the purchase.
		suffix = fmt.Sprintf("%06d", time.Now().Nanosecond()%1000000)
	}
	return fmt.Sprintf("%s-%s-%d-%s", referencePrefix, eventID, time.Now().UnixMilli(), suffix)
}
