package trackingid

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix is the fixed lead-in of every tracking id.
const Prefix = "TRK"

// New produces a human-readable tracking id: fixed prefix, date stamp, random
// suffix, e.g. TRK-20260830-A1B2C3. The suffix carries the uniqueness; the
// parcels table additionally enforces it with a unique index.
func New() string {
	stamp := time.Now().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", Prefix, stamp, suffix)
}
