package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CacheType string

const (
	CacheGitHubPRs     CacheType = "github_prs"
	CacheGitHubCommits CacheType = "github_commits"
	CacheSlackMessages CacheType = "slack_messages"
)

// ProjectCache holds the latest fetched payload of one data type for one project.
// (ProjectID, Type) is unique; rows are replaced wholesale on every refresh.
type ProjectCache struct {
	ID          uint           `gorm:"primaryKey"`
	ProjectID   uuid.UUID      `gorm:"type:char(36);not null;uniqueIndex:idx_project_cache_project_type"`
	Project     *Project       `gorm:"constraint:OnDelete:CASCADE"`
	Type        CacheType      `gorm:"type:varchar(32);not null;uniqueIndex:idx_project_cache_project_type"`
	Data        datatypes.JSON `gorm:"not null"`
	LastUpdated time.Time      `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

// NewProjectCache encodes records as the payload of a cache row.
func NewProjectCache[T any](projectID uuid.UUID, cacheType CacheType, records []T, at time.Time) (*ProjectCache, error) {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", cacheType, err)
	}
	return &ProjectCache{
		ProjectID:   projectID,
		Type:        cacheType,
		Data:        payload,
		LastUpdated: at,
	}, nil
}
