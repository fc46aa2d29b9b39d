package service

import (
	"context"
	"net/url"
	"strconv"

	"water-abstraction-admin/internal/returnreqs/domain"
	"water-abstraction-admin/internal/returnreqs/journey"
	"water-abstraction-admin/internal/returnreqs/presenter"
	"water-abstraction-admin/internal/returnreqs/validate"
)

// GetPurpose loads the purposes page for one requirement.
func (s *SetupService) GetPurpose(ctx context.Context, sessionID string, index int) (*presenter.MultiSelectPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	purposes, err := s.refdata.ListPurposesForLicence(ctx, doc.Licence.ID)
	if err != nil {
		return nil, err
	}
	return presenter.BuildPurposePage(sessionID, doc, index, req.Purposes, purposes), nil
}

// SubmitPurpose records which purposes the requirement covers.
func (s *SetupService) SubmitPurpose(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	purposes, err := s.refdata.ListPurposesForLicence(ctx, doc.Licence.ID)
	if err != nil {
		return nil, err
	}
	valid := make([]string, len(purposes))
	for i, p := range purposes {
		valid[i] = p.ID
	}

	selected := formValues(form, "purposes")
	failure := validate.Run([]validate.Rule{
		{Field: "purposes", Message: "Select any purpose for the requirements for returns", Ok: func() bool { return len(selected) > 0 }},
		{Field: "purposes", Message: "Select a valid purpose", Ok: func() bool { return validate.AllOf(selected, valid) }},
	})
	if failure != nil {
		page := presenter.BuildPurposePage(sessionID, doc, index, selected, purposes)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	req.Purposes = selected
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepPurpose, index)}, nil
}

// GetPoints loads the abstraction-points page for one requirement.
func (s *SetupService) GetPoints(ctx context.Context, sessionID string, index int) (*presenter.MultiSelectPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	points, err := s.refdata.ListPointsForLicence(ctx, doc.Licence.ID)
	if err != nil {
		return nil, err
	}
	return presenter.BuildPointsPage(sessionID, doc, index, req.Points, points), nil
}

// SubmitPoints records which abstraction points the requirement covers.
func (s *SetupService) SubmitPoints(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	points, err := s.refdata.ListPointsForLicence(ctx, doc.Licence.ID)
	if err != nil {
		return nil, err
	}
	valid := make([]string, len(points))
	for i, p := range points {
		valid[i] = p.ID
	}

	selected := formValues(form, "points")
	failure := validate.Run([]validate.Rule{
		{Field: "points", Message: "Select any points for the requirements for returns", Ok: func() bool { return len(selected) > 0 }},
		{Field: "points", Message: "Select a valid point", Ok: func() bool { return validate.AllOf(selected, valid) }},
	})
	if failure != nil {
		page := presenter.BuildPointsPage(sessionID, doc, index, selected, points)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	req.Points = selected
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepPoints, index)}, nil
}

// GetAbstractionPeriod loads the abstraction-period page for one requirement.
func (s *SetupService) GetAbstractionPeriod(ctx context.Context, sessionID string, index int) (*presenter.AbstractionPeriodPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	return presenter.BuildAbstractionPeriodPage(sessionID, doc, index, req.AbstractionPeriod), nil
}

// SubmitAbstractionPeriod records the requirement's in-year day/month range.
func (s *SetupService) SubmitAbstractionPeriod(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}

	startDay, _ := strconv.Atoi(formValue(form, "startDay"))
	startMonth, _ := strconv.Atoi(formValue(form, "startMonth"))
	endDay, _ := strconv.Atoi(formValue(form, "endDay"))
	endMonth, _ := strconv.Atoi(formValue(form, "endMonth"))

	failure := validate.Run([]validate.Rule{
		{Field: "startDate", Message: "Enter a real start date for the abstraction period", Ok: func() bool {
			return validate.DayMonth(startDay, startMonth)
		}},
		{Field: "endDate", Message: "Enter a real end date for the abstraction period", Ok: func() bool {
			return validate.DayMonth(endDay, endMonth)
		}},
	})
	if failure != nil {
		page := presenter.BuildAbstractionPeriodPage(sessionID, doc, index, nil)
		page.StartDay = formValue(form, "startDay")
		page.StartMonth = formValue(form, "startMonth")
		page.EndDay = formValue(form, "endDay")
		page.EndMonth = formValue(form, "endMonth")
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	req.AbstractionPeriod = &domain.AbstractionPeriod{
		StartDay: startDay, StartMonth: startMonth,
		EndDay: endDay, EndMonth: endMonth,
	}
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepAbstractionPeriod, index)}, nil
}

// GetReturnsCycle loads the returns-cycle page for one requirement.
func (s *SetupService) GetReturnsCycle(ctx context.Context, sessionID string, index int) (*presenter.OptionPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	return presenter.BuildOptionPage(sessionID, doc, index, req.ReturnsCycle, domain.ReturnsCycles), nil
}

// SubmitReturnsCycle records the requirement's returns cycle.
func (s *SetupService) SubmitReturnsCycle(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}

	cycle := formValue(form, "cycle")
	failure := validate.Run([]validate.Rule{
		{Field: "cycle", Message: "Select the returns cycle for the requirements for returns", Ok: func() bool { return validate.NotEmpty(cycle) }},
		{Field: "cycle", Message: "Select a valid returns cycle", Ok: func() bool { return validate.OneOf(cycle, domain.ReturnsCycles) }},
	})
	if failure != nil {
		page := presenter.BuildOptionPage(sessionID, doc, index, cycle, domain.ReturnsCycles)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	req.ReturnsCycle = cycle
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepReturnsCycle, index)}, nil
}

// GetSiteDescription loads the site-description page for one requirement.
func (s *SetupService) GetSiteDescription(ctx context.Context, sessionID string, index int) (*presenter.TextPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	return presenter.BuildTextPage(sessionID, doc, index, req.SiteDescription), nil
}

// SubmitSiteDescription records the requirement's site description.
func (s *SetupService) SubmitSiteDescription(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}

	description := formValue(form, "description")
	failure := validate.Run([]validate.Rule{
		{Field: "description", Message: "Enter a description of the site", Ok: func() bool { return validate.NotEmpty(description) }},
		{Field: "description", Message: "Site description must be 10 characters or more", Ok: func() bool { return len(description) >= 10 }},
		{Field: "description", Message: "Site description must be 100 characters or less", Ok: func() bool { return len(description) <= 100 }},
	})
	if failure != nil {
		page := presenter.BuildTextPage(sessionID, doc, index, description)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	req.SiteDescription = description
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepSiteDescription, index)}, nil
}

// GetFrequencyCollected loads the collection-frequency page for one requirement.
func (s *SetupService) GetFrequencyCollected(ctx context.Context, sessionID string, index int) (*presenter.OptionPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	return presenter.BuildOptionPage(sessionID, doc, index, req.FrequencyCollected, domain.Frequencies), nil
}

// SubmitFrequencyCollected records how often readings are collected.
func (s *SetupService) SubmitFrequencyCollected(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	return s.submitFrequency(ctx, sessionID, index, form, journey.StepFrequencyCollected)
}

// GetFrequencyReported loads the reporting-frequency page for one requirement.
func (s *SetupService) GetFrequencyReported(ctx context.Context, sessionID string, index int) (*presenter.OptionPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	return presenter.BuildOptionPage(sessionID, doc, index, req.FrequencyReported, domain.Frequencies), nil
}

// SubmitFrequencyReported records how often readings are reported.
func (s *SetupService) SubmitFrequencyReported(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	return s.submitFrequency(ctx, sessionID, index, form, journey.StepFrequencyReported)
}

func (s *SetupService) submitFrequency(ctx context.Context, sessionID string, index int, form url.Values, step string) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}

	frequency := formValue(form, "frequency")
	failure := validate.Run([]validate.Rule{
		{Field: "frequency", Message: "Select how often readings are needed", Ok: func() bool { return validate.NotEmpty(frequency) }},
		{Field: "frequency", Message: "Select a valid frequency", Ok: func() bool { return validate.OneOf(frequency, domain.Frequencies) }},
	})
	if failure != nil {
		page := presenter.BuildOptionPage(sessionID, doc, index, frequency, domain.Frequencies)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	if step == journey.StepFrequencyCollected {
		req.FrequencyCollected = frequency
	} else {
		req.FrequencyReported = frequency
	}
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, step, index)}, nil
}

// GetAgreementsExceptions loads the agreements-and-exceptions page for one requirement.
func (s *SetupService) GetAgreementsExceptions(ctx context.Context, sessionID string, index int) (*presenter.MultiSelectPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}
	return presenter.BuildAgreementsPage(sessionID, doc, index, req.AgreementsExceptions), nil
}

// SubmitAgreementsExceptions records the requirement's agreements and
// exceptions. "none" cannot be combined with other options.
func (s *SetupService) SubmitAgreementsExceptions(ctx context.Context, sessionID string, index int, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := journey.Requirement(doc, index)
	if err != nil {
		return nil, err
	}

	selected := formValues(form, "agreementsExceptions")
	failure := validate.Run([]validate.Rule{
		{Field: "agreementsExceptions", Message: "Select if there are any agreements and exceptions needed for the requirements for returns", Ok: func() bool {
			return len(selected) > 0
		}},
		{Field: "agreementsExceptions", Message: "Select a valid option", Ok: func() bool {
			return validate.AllOf(selected, domain.AgreementsExceptions)
		}},
		{Field: "agreementsExceptions", Message: "Select agreements and exceptions, or \"none\"", Ok: func() bool {
			return !validate.OneOf("none", selected) || len(selected) == 1
		}},
	})
	if failure != nil {
		page := presenter.BuildAgreementsPage(sessionID, doc, index, selected)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	req.AgreementsExceptions = selected
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepAgreementsExceptions, index)}, nil
}
