package repository

import "github.com/KumarShresth7/EmailAutomation/internal/feedback/domain"

// FeedbackRepository defines the interface for feedback data access
type FeedbackRepository interface {
	Create(feedback *domain.Feedback) error
	FindAll() ([]*domain.Feedback, error)
}
