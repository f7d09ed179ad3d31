package services

import (
	"context"
	"fmt"

	"foodcourt/internal/domain"
	"foodcourt/internal/validate"
)

const maxFeedbackFields = 32

type FeedbackService struct {
	Store FeedbackStore
}

func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{Store: store}
}

// Submit stores a free-form feedback document.
func (s *FeedbackService) Submit(ctx context.Context, fb domain.Feedback) (string, error) {
	if len(fb) == 0 {
		return "", fmt.Errorf("%w: feedback is empty", validate.ErrInvalid)
	}
	if len(fb) > maxFeedbackFields {
		return "", fmt.Errorf("%w: feedback has more than %d fields", validate.ErrInvalid, maxFeedbackFields)
	}
	return s.Store.Insert(ctx, fb)
}

// List returns feedback newest first.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.Store.List(ctx)
}
