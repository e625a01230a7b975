package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one cached data type as served to the UI.
type Snapshot[T any] struct {
	Data        []T        `json:"data"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// DashboardBundle groups the three cache entries of a project.
// A nil field means nothing has been cached for that type yet.
type DashboardBundle struct {
	ProjectID     uuid.UUID               `json:"projectId"`
	PullRequests  *Snapshot[PullRequest]  `json:"pullRequests"`
	Commits       *Snapshot[Commit]       `json:"commits"`
	SlackMessages *Snapshot[SlackMessage] `json:"slackMessages"`
}

// NewDashboardBundle decodes cache rows into a bundle. Rows of unknown type are ignored.
func NewDashboardBundle(projectID uuid.UUID, entries []ProjectCache) (*DashboardBundle, error) {
	bundle := &DashboardBundle{ProjectID: projectID}
	var err error
	for i := range entries {
		entry := &entries[i]
		switch entry.Type {
		case CacheGitHubPRs:
			bundle.PullRequests, err = decodeSnapshot[PullRequest](entry)
		case CacheGitHubCommits:
			bundle.Commits, err = decodeSnapshot[Commit](entry)
		case CacheSlackMessages:
			bundle.SlackMessages, err = decodeSnapshot[SlackMessage](entry)
		}
		if err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

func decodeSnapshot[T any](entry *ProjectCache) (*Snapshot[T], error) {
	records := []T{}
	if len(entry.Data) > 0 {
		if err := json.Unmarshal(entry.Data, &records); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", entry.Type, err)
		}
	}
	if records == nil {
		records = []T{}
	}
	updated := entry.LastUpdated
	return &Snapshot[T]{Data: records, LastUpdated: &updated}, nil
}
