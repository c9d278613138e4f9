package service

import (
	"context"
	"fmt"
	"time"

	"github.com/givers/contactform/internal/model"
	"github.com/givers/contactform/internal/repository"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo  repository.SubmissionRepository
	delay time.Duration
	now   func() time.Time
}

// NewSubmissionService creates a SubmissionService backed by the given repository.
// delay is the pause inserted before each write so the form shows a progress state.
func NewSubmissionService(repo repository.SubmissionRepository, delay time.Duration) SubmissionService {
	return &submissionServiceImpl{repo: repo, delay: delay, now: time.Now}
}

func (s *submissionServiceImpl) Submit(ctx context.Context, in model.SubmissionInput) (*model.Submission, error) {
	in.Normalize()

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	sub := &model.Submission{
		Timestamp: s.now().Local().Format(model.TimestampLayout),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
	}
	if err := s.repo.Append(ctx, sub); err != nil {
		return nil, fmt.Errorf("save submission: %w", err)
	}
	return sub, nil
}

func (s *submissionServiceImpl) List(ctx context.Context) ([]*model.Submission, error) {
	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return []*model.Submission{}, fmt.Errorf("load submissions: %w", err)
	}
	return subs, nil
}

func (s *submissionServiceImpl) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
