package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/KumarShresth7/EmailAutomation/internal/feedback/domain"
	"github.com/KumarShresth7/EmailAutomation/internal/feedback/repository"
)

// FeedbackUsecase defines the interface for feedback business logic
type FeedbackUsecase interface {
	// ProcessComplaint stores a complaint email as feedback. Complaints
	// never touch the order store.
	ProcessComplaint(ctx context.Context, email, body, date, timeOfDay string) error

	// GetFeedback returns all stored feedback, newest first
	GetFeedback() ([]*domain.Feedback, error)
}

type feedbackUsecase struct {
	feedback repository.FeedbackRepository
}

// NewFeedbackUsecase creates a new feedback usecase
func NewFeedbackUsecase(feedback repository.FeedbackRepository) FeedbackUsecase {
	return &feedbackUsecase{feedback: feedback}
}

func (u *feedbackUsecase) ProcessComplaint(ctx context.Context, email, body, date, timeOfDay string) error {
	entry := &domain.Feedback{
		Email:   email,
		Message: body,
		Date:    date,
		Time:    timeOfDay,
	}
	if err := u.feedback.Create(entry); err != nil {
		return fmt.Errorf("failed to store complaint: %w", err)
	}
	log.Printf("[FeedbackUsecase] Complaint from %s recorded", email)
	return nil
}

func (u *feedbackUsecase) GetFeedback() ([]*domain.Feedback, error) {
	return u.feedback.FindAll()
}
