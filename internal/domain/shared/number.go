package shared

import (
	"fmt"
	"math/rand"
	"time"
)

// NewDocumentNumber builds a human-readable document number: the given
// prefix, the date as yyyymmdd and a random 4-digit suffix. Callers
// check uniqueness against their repository and retry on collision.
func NewDocumentNumber(prefix string, date time.Time) string {
	return fmt.Sprintf("%s%s%04d", prefix, date.Format("20060102"), rand.Intn(10000))
}
