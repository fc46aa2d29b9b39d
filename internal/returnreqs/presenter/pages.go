package presenter

import (
	"strconv"

	refdomain "water-abstraction-admin/internal/refdata/domain"
	"water-abstraction-admin/internal/returnreqs/domain"
)

// StartPage asks whether the licence needs returns at all.
type StartPage struct {
	SessionID   string   `json:"sessionId"`
	LicenceRef  string   `json:"licenceRef"`
	HolderName  string   `json:"holderName"`
	JourneyType string   `json:"journeyType"`
	Options     []Option `json:"options"`
}

func BuildStartPage(sessionID string, doc *domain.Document) *StartPage {
	return &StartPage{
		SessionID:   sessionID,
		LicenceRef:  doc.Licence.LicenceRef,
		HolderName:  doc.Licence.HolderName,
		JourneyType: doc.JourneyType,
		Options: []Option{
			{Value: domain.JourneyReturnsRequired, Label: "Returns required"},
			{Value: domain.JourneyNoReturnsRequired, Label: "Returns are not required"},
		},
	}
}

// StartDatePage picks the new version's start date.
type StartDatePage struct {
	SessionID        string `json:"sessionId"`
	LicenceRef       string `json:"licenceRef"`
	LicenceStartDate string `json:"licenceStartDate"`
	Option           string `json:"option"`
	Day              string `json:"day"`
	Month            string `json:"month"`
	Year             string `json:"year"`
}

func BuildStartDatePage(sessionID string, doc *domain.Document) *StartDatePage {
	p := &StartDatePage{
		SessionID:        sessionID,
		LicenceRef:       doc.Licence.LicenceRef,
		LicenceStartDate: FormatLongDate(doc.Licence.StartDate),
		Option:           doc.StartDateOption,
	}
	if doc.StartDateOption == domain.StartDateAnother && doc.StartDate != nil {
		p.Day = strconv.Itoa(doc.StartDate.Day())
		p.Month = strconv.Itoa(int(doc.StartDate.Month()))
		p.Year = strconv.Itoa(doc.StartDate.Year())
	}
	return p
}

// OptionPage covers the single-choice pages: reason, method, returns cycle,
// collection and reporting frequency.
type OptionPage struct {
	SessionID  string   `json:"sessionId"`
	LicenceRef string   `json:"licenceRef"`
	Index      int      `json:"index,omitempty"`
	Selected   string   `json:"selected"`
	Options    []Option `json:"options"`
}

func BuildOptionPage(sessionID string, doc *domain.Document, index int, selected string, options []string) *OptionPage {
	opts := make([]Option, len(options))
	for i, o := range options {
		opts[i] = Option{Value: o, Label: o}
	}
	return &OptionPage{
		SessionID:  sessionID,
		LicenceRef: doc.Licence.LicenceRef,
		Index:      index,
		Selected:   selected,
		Options:    opts,
	}
}

// MultiSelectPage covers the checkbox pages: purposes, points, agreements and exceptions.
type MultiSelectPage struct {
	SessionID  string   `json:"sessionId"`
	LicenceRef string   `json:"licenceRef"`
	Index      int      `json:"index"`
	Selected   []string `json:"selected"`
	Options    []Option `json:"options"`
}

func BuildPurposePage(sessionID string, doc *domain.Document, index int, selected []string, purposes []*refdomain.Purpose) *MultiSelectPage {
	opts := make([]Option, len(purposes))
	for i, p := range purposes {
		opts[i] = Option{Value: p.ID, Label: p.Description}
	}
	return &MultiSelectPage{
		SessionID:  sessionID,
		LicenceRef: doc.Licence.LicenceRef,
		Index:      index,
		Selected:   selected,
		Options:    opts,
	}
}

func BuildPointsPage(sessionID string, doc *domain.Document, index int, selected []string, points []*refdomain.Point) *MultiSelectPage {
	opts := make([]Option, len(points))
	for i, p := range points {
		opts[i] = Option{Value: p.ID, Label: PointDescription(p)}
	}
	return &MultiSelectPage{
		SessionID:  sessionID,
		LicenceRef: doc.Licence.LicenceRef,
		Index:      index,
		Selected:   selected,
		Options:    opts,
	}
}

func BuildAgreementsPage(sessionID string, doc *domain.Document, index int, selected []string) *MultiSelectPage {
	opts := make([]Option, len(domain.AgreementsExceptions))
	for i, o := range domain.AgreementsExceptions {
		opts[i] = Option{Value: o, Label: o}
	}
	return &MultiSelectPage{
		SessionID:  sessionID,
		LicenceRef: doc.Licence.LicenceRef,
		Index:      index,
		Selected:   selected,
		Options:    opts,
	}
}

// AbstractionPeriodPage edits a requirement's in-year day/month range.
type AbstractionPeriodPage struct {
	SessionID  string `json:"sessionId"`
	LicenceRef string `json:"licenceRef"`
	Index      int    `json:"index"`
	StartDay   string `json:"startDay"`
	StartMonth string `json:"startMonth"`
	EndDay     string `json:"endDay"`
	EndMonth   string `json:"endMonth"`
}

func BuildAbstractionPeriodPage(sessionID string, doc *domain.Document, index int, period *domain.AbstractionPeriod) *AbstractionPeriodPage {
	p := &AbstractionPeriodPage{
		SessionID:  sessionID,
		LicenceRef: doc.Licence.LicenceRef,
		Index:      index,
	}
	if period != nil {
		p.StartDay = strconv.Itoa(period.StartDay)
		p.StartMonth = strconv.Itoa(period.StartMonth)
		p.EndDay = strconv.Itoa(period.EndDay)
		p.EndMonth = strconv.Itoa(period.EndMonth)
	}
	return p
}

// TextPage covers the free-text pages: site description and note.
type TextPage struct {
	SessionID  string `json:"sessionId"`
	LicenceRef string `json:"licenceRef"`
	Index      int    `json:"index,omitempty"`
	Value      string `json:"value"`
}

func BuildTextPage(sessionID string, doc *domain.Document, index int, value string) *TextPage {
	return &TextPage{
		SessionID:  sessionID,
		LicenceRef: doc.Licence.LicenceRef,
		Index:      index,
		Value:      value,
	}
}
