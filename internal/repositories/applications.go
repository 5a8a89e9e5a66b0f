package repositories

import (
	"context"
	"github.com/google/uuid"
	"github.com/quantumstack/site/internal/entities"
	"gorm.io/gorm"
	"time"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

// Add stores the application, assigning an ID when it has none.
func (repo *Applications) Add(ctx context.Context, application *entities.JobApplication) error {
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	return repo.db.WithContext(ctx).Create(application).Error
}

func (repo *Applications) GetByJob(ctx context.Context, jobID string) ([]entities.JobApplication, error) {

	var applications []entities.JobApplication
	if err := repo.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at desc").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (repo *Applications) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.JobApplication{}, "created_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
