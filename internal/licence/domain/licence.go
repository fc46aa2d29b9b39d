package domain

import "time"

// Licence is the abstraction licence a setup journey is started from.
// Read-only here; licence lifecycle is owned elsewhere.
type Licence struct {
	ID          string
	LicenceRef  string
	HolderName  string
	RegionID    string
	StartDate   time.Time
	ExpiredDate *time.Time // nil when the licence has no end date
}
