package models

import "time"

type PullRequestUser struct {
	Login  string `json:"login"`
	Avatar string `json:"avatar"`
}

// PullRequest is the normalized shape of one GitHub pull request.
type PullRequest struct {
	ID        int64           `json:"id"`
	Number    int             `json:"number"`
	Title     string          `json:"title"`
	State     string          `json:"state"`
	User      PullRequestUser `json:"user"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	URL       string          `json:"url"`
}

type CommitAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type Commit struct {
	SHA     string       `json:"sha"`
	Message string       `json:"message"`
	Author  CommitAuthor `json:"author"`
	Date    time.Time    `json:"date"`
	URL     string       `json:"url"`
}

type SlackUser struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// UnknownSlackUser is attached to messages whose author could not be resolved.
var UnknownSlackUser = SlackUser{Name: "Unknown"}

type SlackMessage struct {
	TS   string    `json:"ts"`
	Text string    `json:"text"`
	User SlackUser `json:"user"`
	Date time.Time `json:"date"`
}
