package domain

import "time"

// Version statuses.
const (
	StatusCurrent = "current"
)

// ReturnVersion is the permanent record a completed setup journey produces,
// one per journey completion. A no-returns-required journey produces a
// version with no requirements.
type ReturnVersion struct {
	ID        string
	LicenceID string
	Version   int
	Status    string
	Reason    string
	StartDate time.Time
	Notes     string
	CreatedAt time.Time
}

// ReturnRequirement is one normalized requirement under a version. LegacyID is
// the NALD-style sequential reference, numbered per region.
type ReturnRequirement struct {
	ID                   string
	ReturnVersionID      string
	RegionID             string
	LegacyID             int
	SiteDescription      string
	ReturnsCycle         string
	FrequencyCollected   string
	FrequencyReported    string
	AbstractionPeriod    AbstractionPeriod
	AgreementsExceptions []string
	PurposeIDs           []string
	PointIDs             []string
	CreatedAt            time.Time
}

// AbstractionPeriod is the requirement's in-year day/month range.
type AbstractionPeriod struct {
	StartDay   int
	StartMonth int
	EndDay     int
	EndMonth   int
}
