package clients

import (
	"encoding/json"
	"errors"

	"github.com/google/go-github/v62/github"
	"github.com/slack-go/slack"
)

// Result is the outcome of a fetch that reached the upstream service.
// A Failed result carries the reason and no records; an OK result always
// carries a non-nil slice, possibly empty.
type Result[T any] struct {
	Records []T
	Err     error
}

func OK[T any](records []T) Result[T] {
	if records == nil {
		records = []T{}
	}
	return Result[T]{Records: records}
}

func Failed[T any](reason error) Result[T] {
	return Result[T]{Err: reason}
}

func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// isUpstreamFailure reports whether err was produced by the remote service
// answering with something unusable, as opposed to the call not completing.
func isUpstreamFailure(err error) bool {
	var (
		ghErr      *github.ErrorResponse
		ghRate     *github.RateLimitError
		ghAbuse    *github.AbuseRateLimitError
		ghAccepted *github.AcceptedError
		slackResp  slack.SlackErrorResponse
		slackCode  slack.StatusCodeError
		slackRate  *slack.RateLimitedError
		syntaxErr  *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, ErrInvalidRepoFormat):
		return true
	case errors.As(err, &ghErr), errors.As(err, &ghRate), errors.As(err, &ghAbuse), errors.As(err, &ghAccepted):
		return true
	case errors.As(err, &slackResp), errors.As(err, &slackCode), errors.As(err, &slackRate):
		return true
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return true
	}
	return false
}
