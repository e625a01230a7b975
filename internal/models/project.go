package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	OrganizationID uuid.UUID `gorm:"type:char(36);not null;index" json:"organization"`
	GithubRepo     string    `gorm:"size:255" json:"githubRepo,omitempty"`
	SlackChannel   string    `gorm:"size:64" json:"slackChannel,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasGitHub reports whether the project is linked to a repository.
func (p *Project) HasGitHub() bool {
	return strings.TrimSpace(p.GithubRepo) != ""
}

// HasSlack reports whether the project is linked to a channel.
func (p *Project) HasSlack() bool {
	return strings.TrimSpace(p.SlackChannel) != ""
}
