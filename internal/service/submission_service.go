package service

import (
	"context"

	"github.com/givers/contactform/internal/model"
)

// SubmissionService defines the business logic for contact form submissions.
type SubmissionService interface {
	// Submit normalizes a validated input, stamps it with the local time and
	// appends it to the store. Callers run Validate first.
	Submit(ctx context.Context, in model.SubmissionInput) (*model.Submission, error)

	// List returns all stored submissions in insertion order. When the store
	// cannot be read it returns an empty slice together with the error.
	List(ctx context.Context) ([]*model.Submission, error)
}
