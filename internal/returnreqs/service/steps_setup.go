package service

import (
	"context"
	"net/url"
	"time"

	"water-abstraction-admin/internal/returnreqs/domain"
	"water-abstraction-admin/internal/returnreqs/journey"
	"water-abstraction-admin/internal/returnreqs/presenter"
	"water-abstraction-admin/internal/returnreqs/validate"
)

// GetStart loads the journey-type page.
func (s *SetupService) GetStart(ctx context.Context, sessionID string) (*presenter.StartPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return presenter.BuildStartPage(sessionID, doc), nil
}

// SubmitStart records whether the licence needs returns at all.
func (s *SetupService) SubmitStart(ctx context.Context, sessionID string, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	journeyType := formValue(form, "journeyType")
	options := []string{domain.JourneyReturnsRequired, domain.JourneyNoReturnsRequired}
	failure := validate.Run([]validate.Rule{
		{Field: "journeyType", Message: "Select if returns are required", Ok: func() bool { return validate.NotEmpty(journeyType) }},
		{Field: "journeyType", Message: "Select a valid option", Ok: func() bool { return validate.OneOf(journeyType, options) }},
	})
	if failure != nil {
		page := presenter.BuildStartPage(sessionID, doc)
		page.JourneyType = journeyType
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	doc.JourneyType = journeyType
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepStart, 0)}, nil
}

// GetStartDate loads the version start-date page.
func (s *SetupService) GetStartDate(ctx context.Context, sessionID string) (*presenter.StartDatePage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return presenter.BuildStartDatePage(sessionID, doc), nil
}

// SubmitStartDate records the new version's start date: the licence start
// date, or a user-entered date which must be a real date on or after the
// licence start and before any expiry.
func (s *SetupService) SubmitStartDate(ctx context.Context, sessionID string, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	option := formValue(form, "option")
	day := formValue(form, "day")
	month := formValue(form, "month")
	year := formValue(form, "year")

	var picked time.Time
	var pickedOK bool
	rules := []validate.Rule{
		{Field: "option", Message: "Select the start date for the requirements for returns", Ok: func() bool { return validate.NotEmpty(option) }},
		{Field: "option", Message: "Select a valid start date option", Ok: func() bool {
			return validate.OneOf(option, []string{domain.StartDateLicence, domain.StartDateAnother})
		}},
	}
	if option == domain.StartDateAnother {
		rules = append(rules,
			validate.Rule{Field: "date", Message: "Enter a real start date", Ok: func() bool {
				picked, pickedOK = parseDate(day, month, year)
				return pickedOK
			}},
			validate.Rule{Field: "date", Message: "Start date must be on or after the original licence start date", Ok: func() bool {
				return !picked.Before(doc.Licence.StartDate)
			}},
			validate.Rule{Field: "date", Message: "Start date must be before the licence end date", Ok: func() bool {
				return doc.Licence.ExpiredDate == nil || picked.Before(*doc.Licence.ExpiredDate)
			}},
		)
	}
	if failure := validate.Run(rules); failure != nil {
		page := presenter.BuildStartDatePage(sessionID, doc)
		page.Option, page.Day, page.Month, page.Year = option, day, month, year
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	doc.StartDateOption = option
	if option == domain.StartDateAnother {
		doc.StartDate = &picked
	} else {
		doc.StartDate = nil
	}
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepStartDate, 0)}, nil
}

// GetReason loads the change-reason page.
func (s *SetupService) GetReason(ctx context.Context, sessionID string) (*presenter.OptionPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return presenter.BuildOptionPage(sessionID, doc, 0, doc.Reason, domain.Reasons), nil
}

// SubmitReason records why the return requirements are changing.
func (s *SetupService) SubmitReason(ctx context.Context, sessionID string, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	reason := formValue(form, "reason")
	failure := validate.Run([]validate.Rule{
		{Field: "reason", Message: "Select the reason for the requirements for returns", Ok: func() bool { return validate.NotEmpty(reason) }},
		{Field: "reason", Message: "Select a valid reason", Ok: func() bool { return validate.OneOf(reason, domain.Reasons) }},
	})
	if failure != nil {
		page := presenter.BuildOptionPage(sessionID, doc, 0, reason, domain.Reasons)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	doc.Reason = reason
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepReason, 0)}, nil
}

// GetMethod loads the setup-method page.
func (s *SetupService) GetMethod(ctx context.Context, sessionID string) (*presenter.OptionPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	options := []string{domain.MethodAbstractionData, domain.MethodManual}
	return presenter.BuildOptionPage(sessionID, doc, 0, doc.Method, options), nil
}

// SubmitMethod records how requirements will be set up. Choosing abstraction
// data seeds a single requirement from the licence's purposes and points and
// routes straight to the check page.
func (s *SetupService) SubmitMethod(ctx context.Context, sessionID string, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	method := formValue(form, "method")
	options := []string{domain.MethodAbstractionData, domain.MethodManual}
	failure := validate.Run([]validate.Rule{
		{Field: "method", Message: "Select how you want to set up the requirements for returns", Ok: func() bool { return validate.NotEmpty(method) }},
		{Field: "method", Message: "Select a valid option", Ok: func() bool { return validate.OneOf(method, options) }},
	})
	if failure != nil {
		page := presenter.BuildOptionPage(sessionID, doc, 0, method, options)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	doc.Method = method
	if len(doc.Requirements) == 0 {
		if method == domain.MethodAbstractionData {
			req, err := s.requirementFromAbstractionData(ctx, doc.Licence.ID)
			if err != nil {
				return nil, err
			}
			doc.Requirements = []domain.Requirement{*req}
		} else {
			// Manual setup walks the first requirement's sub-steps next.
			doc.Requirements = []domain.Requirement{{}}
		}
	}
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepMethod, 0)}, nil
}

// requirementFromAbstractionData seeds one requirement covering everything
// the licence abstracts: all its purposes and points, a whole-year period,
// and the default cycle and frequencies.
func (s *SetupService) requirementFromAbstractionData(ctx context.Context, licenceID string) (*domain.Requirement, error) {
	purposes, err := s.refdata.ListPurposesForLicence(ctx, licenceID)
	if err != nil {
		return nil, err
	}
	points, err := s.refdata.ListPointsForLicence(ctx, licenceID)
	if err != nil {
		return nil, err
	}

	req := &domain.Requirement{
		AbstractionPeriod:  &domain.AbstractionPeriod{StartDay: 1, StartMonth: 4, EndDay: 31, EndMonth: 3},
		ReturnsCycle:       "winter-and-all-year",
		SiteDescription:    "Licensed abstraction site",
		FrequencyCollected: "day",
		FrequencyReported:  "month",
	}
	for _, p := range purposes {
		req.Purposes = append(req.Purposes, p.ID)
	}
	for _, p := range points {
		req.Points = append(req.Points, p.ID)
	}
	return req, nil
}
