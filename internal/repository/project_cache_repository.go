package repository

//go:generate mockgen -source=project_cache_repository.go -destination=../mocks/project_cache_repository_mock.go -package=mocks

import (
	"context"

	"symphony/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectCacheRepository stores at most one entry per (project, type).
type ProjectCacheRepository interface {
	Upsert(ctx context.Context, entry *models.ProjectCache) error
	Get(ctx context.Context, projectID uuid.UUID, cacheType models.CacheType) (*models.ProjectCache, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectCache, error)
	Count(ctx context.Context) (int64, error)
}

type projectCacheRepository struct {
	db *gorm.DB
}

func NewProjectCacheRepository(db *gorm.DB) ProjectCacheRepository {
	return &projectCacheRepository{db: db}
}

// Upsert replaces the payload and timestamp of an existing entry or inserts a new one.
func (r *projectCacheRepository) Upsert(ctx context.Context, entry *models.ProjectCache) error {
	return r.db.WithContext(ctx).
		Omit("Project").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "last_updated", "updated_at"}),
		}).
		Create(entry).
		Error
}

func (r *projectCacheRepository) Get(ctx context.Context, projectID uuid.UUID, cacheType models.CacheType) (*models.ProjectCache, error) {
	var entry models.ProjectCache
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND type = ?", projectID, cacheType).
		First(&entry).
		Error
	if err != nil {
		return nil, mapError(err)
	}
	return &entry, nil
}

func (r *projectCacheRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectCache, error) {
	var entries []models.ProjectCache
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&entries).
		Error
	return entries, err
}

func (r *projectCacheRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectCache{}).
		Count(&count).
		Error
	return count, err
}
