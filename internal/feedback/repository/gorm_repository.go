package repository

import (
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/feedback/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormFeedbackRepository implements FeedbackRepository using GORM
type gormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GORM-based FeedbackRepository
func NewGormFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &gormFeedbackRepository{db: db}
}

func (r *gormFeedbackRepository) Create(feedback *domain.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	feedback.CreatedAt = time.Now()
	return r.db.Create(feedback).Error
}

func (r *gormFeedbackRepository) FindAll() ([]*domain.Feedback, error) {
	var feedback []*domain.Feedback
	err := r.db.Order("created_at DESC").Find(&feedback).Error
	return feedback, err
}
