package repository

import (
	"context"

	"github.com/Mahekpandey/DyslexiaDetection/internal/database"
	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
)

// ResultRepository stores completed-session summaries. It satisfies
// session.ResultStore.
type ResultRepository struct{}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{}
}

func (r *ResultRepository) SaveResult(result *models.SessionResult) error {
	return database.DB.Create(result).Error
}

// GetResult fetches the stored summary for a session id.
func (r *ResultRepository) GetResult(ctx context.Context, sessionID string) (*models.SessionResult, error) {
	var result models.SessionResult
	err := database.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListRecent returns the most recent stored summaries, newest first.
func (r *ResultRepository) ListRecent(ctx context.Context, limit int) ([]models.SessionResult, error) {
	var results []models.SessionResult
	err := database.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
