package ports

import "time"

// Clock supplies the current time for timestamps and expiry checks.
type Clock interface {
	Now() time.Time
}
