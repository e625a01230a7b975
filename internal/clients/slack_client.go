package clients

//go:generate mockgen -source=slack_client.go -destination=../mocks/slack_client_mock.go -package=mocks

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"symphony/internal/models"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

const (
	defaultMessageLimit    = 20
	defaultUserLookupLimit = 10
)

type SlackClient interface {
	FetchMessages(ctx context.Context, accessToken, channelID string) (Result[models.SlackMessage], error)
}

type SlackConfig struct {
	// APIURL overrides https://slack.com/api/ when set.
	APIURL          string
	MessageLimit    int
	UserLookupLimit int
	Timeout         time.Duration
}

type slackClient struct {
	apiURL          string
	messageLimit    int
	userLookupLimit int
	httpClient      *http.Client
	log             *zap.SugaredLogger
}

func NewSlackClient(config SlackConfig, log *zap.SugaredLogger) SlackClient {
	c := &slackClient{
		apiURL:          config.APIURL,
		messageLimit:    config.MessageLimit,
		userLookupLimit: config.UserLookupLimit,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		log: log,
	}
	if c.apiURL != "" && !strings.HasSuffix(c.apiURL, "/") {
		c.apiURL += "/"
	}
	if c.messageLimit <= 0 {
		c.messageLimit = defaultMessageLimit
	}
	if c.userLookupLimit <= 0 {
		c.userLookupLimit = defaultUserLookupLimit
	}
	return c
}

func (c *slackClient) client(accessToken string) *slack.Client {
	opts := []slack.Option{slack.OptionHTTPClient(c.httpClient)}
	if c.apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(c.apiURL))
	}
	return slack.New(accessToken, opts...)
}

// FetchMessages returns the latest channel messages with their authors resolved.
// Authors beyond the lookup limit, or whose lookup fails, get a placeholder.
func (c *slackClient) FetchMessages(ctx context.Context, accessToken, channelID string) (Result[models.SlackMessage], error) {
	api := c.client(accessToken)

	history, err := api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     c.messageLimit,
	})
	if err != nil {
		return classify[models.SlackMessage](c.log, "conversations.history", channelID, err)
	}

	users, err := c.resolveUsers(ctx, api, history.Messages)
	if err != nil {
		return Result[models.SlackMessage]{}, err
	}

	records := make([]models.SlackMessage, 0, len(history.Messages))
	for _, msg := range history.Messages {
		user, ok := users[msg.User]
		if !ok {
			user = models.UnknownSlackUser
		}
		records = append(records, models.SlackMessage{
			TS:   msg.Timestamp,
			Text: msg.Text,
			User: user,
			Date: parseTimestamp(msg.Timestamp),
		})
	}
	return OK(records), nil
}

// resolveUsers looks up distinct authors in order of first appearance.
// Only cancellation is reported as an error.
func (c *slackClient) resolveUsers(ctx context.Context, api *slack.Client, messages []slack.Message) (map[string]models.SlackUser, error) {
	users := make(map[string]models.SlackUser)
	seen := make(map[string]struct{})
	var ids []string
	for _, msg := range messages {
		if msg.User == "" {
			continue
		}
		if _, ok := seen[msg.User]; ok {
			continue
		}
		seen[msg.User] = struct{}{}
		ids = append(ids, msg.User)
	}
	if len(ids) > c.userLookupLimit {
		ids = ids[:c.userLookupLimit]
	}

	for _, id := range ids {
		info, err := api.GetUserInfoContext(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.Debugw("slack user lookup failed", "user", id, "error", err)
			continue
		}
		name := info.RealName
		if name == "" {
			name = info.Name
		}
		users[id] = models.SlackUser{Name: name, Avatar: info.Profile.Image48}
	}
	return users, nil
}

func parseTimestamp(ts string) time.Time {
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(int64(seconds * 1000)).UTC()
}
