// Package domain defines the return-requirements setup journey document: the
// typed shape stored in a session's data column while the wizard is in flight.
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// JourneyTag identifies this journey's document inside a session. Documents
// are a tagged union: every journey writes its tag into the "journey" field
// and refuses to decode a document carrying another journey's tag.
const JourneyTag = "return-requirements-setup"

// Journey type: whether the licence needs returns at all. Chosen on the first step.
const (
	JourneyReturnsRequired   = "returns-required"
	JourneyNoReturnsRequired = "no-returns-required"
)

// Start date options for the new return version.
const (
	StartDateLicence = "licence-start-date"
	StartDateAnother = "another-start-date"
)

// Reasons a new return version is being created.
var Reasons = []string{
	"new-licence",
	"change-to-special-agreement",
	"change-to-return-requirements",
	"error-correction",
	"succession-to-whole-licence",
	"transfer-licence",
}

// Setup methods for the returns-required branch.
const (
	MethodAbstractionData = "use-abstraction-data"
	MethodManual          = "set-up-manually"
)

// Returns cycles.
var ReturnsCycles = []string{"summer", "winter-and-all-year"}

// Collection and reporting frequencies.
var Frequencies = []string{"day", "week", "month"}

// Agreements and exceptions a requirement can carry. "none" is exclusive.
var AgreementsExceptions = []string{
	"gravity-fill",
	"transfer-re-abstraction-scheme",
	"two-part-tariff",
	"56-returns-exception",
	"none",
}

// LicenceDetails is the slice of the licence seeded into the document when the
// journey starts, so later steps render without re-fetching the licence.
type LicenceDetails struct {
	ID          string     `json:"id"`
	LicenceRef  string     `json:"licenceRef"`
	HolderName  string     `json:"holderName"`
	RegionID    string     `json:"regionId"`
	StartDate   time.Time  `json:"startDate"`
	ExpiredDate *time.Time `json:"expiredDate,omitempty"`
}

// AbstractionPeriod is a day/month range within a year (e.g. 1 April to 31 October).
type AbstractionPeriod struct {
	StartDay   int `json:"startDay"`
	StartMonth int `json:"startMonth"`
	EndDay     int `json:"endDay"`
	EndMonth   int `json:"endMonth"`
}

// Requirement is one entry in the journey's repeated group. Fields fill in as
// the operator works through the per-requirement steps; a freshly appended
// requirement is all zero values.
type Requirement struct {
	Purposes             []string           `json:"purposes,omitempty"`
	Points               []string           `json:"points,omitempty"`
	AbstractionPeriod    *AbstractionPeriod `json:"abstractionPeriod,omitempty"`
	ReturnsCycle         string             `json:"returnsCycle,omitempty"`
	SiteDescription      string             `json:"siteDescription,omitempty"`
	FrequencyCollected   string             `json:"frequencyCollected,omitempty"`
	FrequencyReported    string             `json:"frequencyReported,omitempty"`
	AgreementsExceptions []string           `json:"agreementsExceptions,omitempty"`
}

// Document is the whole journey state. It is read, copied, mutated and written
// back as one unit; no step patches the stored form in place.
type Document struct {
	Journey     string         `json:"journey"`
	Licence     LicenceDetails `json:"licence"`
	JourneyType string         `json:"journeyType,omitempty"`

	StartDateOption string     `json:"startDateOption,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	Method          string     `json:"method,omitempty"`
	Note            string     `json:"note,omitempty"`

	Requirements []Requirement `json:"requirements,omitempty"`

	// CheckPageVisited flips once the operator reaches the check page. From
	// then on every successful edit routes back to check instead of to the
	// next linear step. Appending a requirement resets it so the new entry's
	// sub-steps run linearly again.
	CheckPageVisited bool `json:"checkPageVisited,omitempty"`
}

// EffectiveStartDate resolves the version start date: the picked date for
// "another-start-date", otherwise the licence start date.
func (d *Document) EffectiveStartDate() time.Time {
	if d.StartDateOption == StartDateAnother && d.StartDate != nil {
		return *d.StartDate
	}
	return d.Licence.StartDate
}

// Encode marshals the document for storage.
func (d *Document) Encode() (json.RawMessage, error) {
	return json.Marshal(d)
}

// Decode unmarshals a session's document, rejecting documents that belong to a
// different journey.
func Decode(raw json.RawMessage) (*Document, error) {
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode session document: %w", err)
	}
	if d.Journey != JourneyTag {
		return nil, fmt.Errorf("session document journey %q is not %q", d.Journey, JourneyTag)
	}
	return &d, nil
}
