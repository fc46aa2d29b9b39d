package service

import (
	"context"
	"errors"
	"net/url"

	"water-abstraction-admin/internal/returnreqs/finalize"
	"water-abstraction-admin/internal/returnreqs/journey"
	"water-abstraction-admin/internal/returnreqs/presenter"
	"water-abstraction-admin/internal/returnreqs/validate"
)

// GetNote loads the optional note page.
func (s *SetupService) GetNote(ctx context.Context, sessionID string) (*presenter.TextPage, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return presenter.BuildTextPage(sessionID, doc, 0, doc.Note), nil
}

// SubmitNote records the note. Blank is allowed; the note is optional.
func (s *SetupService) SubmitNote(ctx context.Context, sessionID string, form url.Values) (*StepResult, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	note := formValue(form, "note")
	failure := validate.Run([]validate.Rule{
		{Field: "note", Message: "Note must be 500 characters or less", Ok: func() bool { return len(note) <= 500 }},
	})
	if failure != nil {
		page := presenter.BuildTextPage(sessionID, doc, 0, note)
		return &StepResult{Error: failure.Message, PageData: page}, nil
	}

	doc.Note = note
	if err := s.journeys.Save(ctx, sess, doc); err != nil {
		return nil, err
	}
	return &StepResult{NextPath: journey.NextPath(doc, sessionID, journey.StepNote, 0)}, nil
}

// GetCheck loads the review page and flags the document so that later edits
// return straight here instead of walking the remaining steps.
func (s *SetupService) GetCheck(ctx context.Context, sessionID string) (*presenter.CheckPage, error) {
	sess, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	purposes, err := s.refdata.ListPurposesForLicence(ctx, doc.Licence.ID)
	if err != nil {
		return nil, err
	}
	points, err := s.refdata.ListPointsForLicence(ctx, doc.Licence.ID)
	if err != nil {
		return nil, err
	}
	if err := s.journeys.MarkCheckPageVisited(ctx, sess, doc); err != nil {
		return nil, err
	}
	return presenter.BuildCheckPage(sessionID, doc, purposes, points), nil
}

// SubmitCheck finalizes the journey. On success the session is gone and the
// operator lands on the new return version.
func (s *SetupService) SubmitCheck(ctx context.Context, sessionID string) (*StepResult, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	version, err := s.finalizer.Finalize(ctx, sessionID, doc)
	if errors.Is(err, finalize.ErrNoRequirements) || errors.Is(err, finalize.ErrIncompleteRequirement) {
		page, pageErr := s.GetCheck(ctx, sessionID)
		if pageErr != nil {
			return nil, pageErr
		}
		return &StepResult{Error: err.Error(), PageData: page}, nil
	}
	if err != nil && version == nil {
		return nil, err
	}
	// A non-nil version with an error means the records committed but the
	// session delete failed; cleanup sweeps it, so the redirect stands.
	return &StepResult{NextPath: "/licences/" + doc.Licence.ID + "/return-versions/" + version.ID}, nil
}

// AddRequirement appends a blank requirement and routes to its first step.
func (s *SetupService) AddRequirement(ctx context.Context, sessionID string) (string, error) {
	index, err := s.journeys.AddRequirement(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return journey.StepPath(sessionID, journey.StepPurpose, index), nil
}

// RemoveRequirement drops the requirement at index and returns to the review page.
func (s *SetupService) RemoveRequirement(ctx context.Context, sessionID string, index int) (string, error) {
	if err := s.journeys.RemoveRequirement(ctx, sessionID, index); err != nil {
		return "", err
	}
	return journey.StepPath(sessionID, journey.StepCheck, 0), nil
}
