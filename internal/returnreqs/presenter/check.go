package presenter

import (
	"fmt"

	refdomain "water-abstraction-admin/internal/refdata/domain"
	"water-abstraction-admin/internal/returnreqs/domain"
)

// RequirementSummary is one requirement entry on the check page.
type RequirementSummary struct {
	Index                int      `json:"index"`
	Purposes             []string `json:"purposes"`
	Points               []string `json:"points"`
	AbstractionPeriod    string   `json:"abstractionPeriod"`
	ReturnsCycle         string   `json:"returnsCycle"`
	SiteDescription      string   `json:"siteDescription"`
	FrequencyCollected   string   `json:"frequencyCollected"`
	FrequencyReported    string   `json:"frequencyReported"`
	AgreementsExceptions []string `json:"agreementsExceptions"`
}

// CheckPage is the journey's review step.
type CheckPage struct {
	SessionID    string               `json:"sessionId"`
	LicenceRef   string               `json:"licenceRef"`
	JourneyType  string               `json:"journeyType"`
	StartDate    string               `json:"startDate"`
	Reason       string               `json:"reason"`
	Note         string               `json:"note,omitempty"`
	Caption      string               `json:"caption"`
	Requirements []RequirementSummary `json:"requirements"`
}

// BuildCheckPage assembles the review page. purposes and points index the
// reference catalogs by id so requirement entries render descriptions rather
// than raw ids.
func BuildCheckPage(
	sessionID string,
	doc *domain.Document,
	purposes []*refdomain.Purpose,
	points []*refdomain.Point,
) *CheckPage {
	purposeByID := make(map[string]string, len(purposes))
	for _, p := range purposes {
		purposeByID[p.ID] = p.Description
	}
	pointByID := make(map[string]*refdomain.Point, len(points))
	for _, p := range points {
		pointByID[p.ID] = p
	}

	summaries := make([]RequirementSummary, len(doc.Requirements))
	for i, req := range doc.Requirements {
		rs := RequirementSummary{
			Index:                i,
			ReturnsCycle:         req.ReturnsCycle,
			SiteDescription:      req.SiteDescription,
			FrequencyCollected:   req.FrequencyCollected,
			FrequencyReported:    req.FrequencyReported,
			AgreementsExceptions: req.AgreementsExceptions,
		}
		for _, id := range req.Purposes {
			if desc, ok := purposeByID[id]; ok {
				rs.Purposes = append(rs.Purposes, desc)
			}
		}
		rs.Purposes = Dedupe(rs.Purposes)
		for _, id := range req.Points {
			if p, ok := pointByID[id]; ok {
				rs.Points = append(rs.Points, PointDescription(p))
			}
		}
		if req.AbstractionPeriod != nil {
			ap := req.AbstractionPeriod
			rs.AbstractionPeriod = FormatAbstractionPeriod(ap.StartDay, ap.StartMonth, ap.EndDay, ap.EndMonth)
		}
		summaries[i] = rs
	}

	n := len(summaries)
	return &CheckPage{
		SessionID:    sessionID,
		LicenceRef:   doc.Licence.LicenceRef,
		JourneyType:  doc.JourneyType,
		StartDate:    FormatLongDate(doc.EffectiveStartDate()),
		Reason:       doc.Reason,
		Note:         doc.Note,
		Caption:      fmt.Sprintf("%d %s", n, Pluralize(n, "return requirement", "return requirements")),
		Requirements: summaries,
	}
}
