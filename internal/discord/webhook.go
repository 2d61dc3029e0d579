// Package discord delivers tweet and error notifications to Discord
// webhook endpoints as embed messages.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	colorTweet = 5814783  // Discord-like blue
	colorError = 16711680 // red

	sendTimeout = 30 * time.Second
)

type embedAuthor struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embedImage struct {
	URL string `json:"url"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color"`
	Author      *embedAuthor `json:"author,omitempty"`
	Footer      embedFooter  `json:"footer"`
	Timestamp   string       `json:"timestamp"`
	Image       *embedImage  `json:"image,omitempty"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// TweetMessage is the content of a normal-mode notification. Nil
// counts render as "N/A" in the footer.
type TweetMessage struct {
	AuthorName     string
	AuthorUsername string
	Text           string
	URL            string
	LikeCount      *int
	RetweetCount   *int
	MediaURLs      []string
}

// Sender posts embed messages to Discord webhooks. Delivery is
// best-effort with a single attempt and no retry.
type Sender struct {
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{
		client: &http.Client{Timeout: sendTimeout},
		logger: logger,
		now:    time.Now,
	}
}

// Send delivers a tweet notification to webhookURL. Any connection
// failure, timeout, or non-2xx status is returned as an error for the
// caller to log; the caller decides whether to continue.
func (s *Sender) Send(ctx context.Context, webhookURL string, msg TweetMessage) error {
	if err := s.post(ctx, webhookURL, s.tweetEmbed(msg)); err != nil {
		return err
	}
	s.logger.Info("sent tweet to discord", "author", msg.AuthorUsername)
	return nil
}

func (s *Sender) tweetEmbed(msg TweetMessage) embed {
	description := fmt.Sprintf("%s\n\n🔗 [View on Twitter](%s)", msg.Text, msg.URL)

	e := embed{
		Title: fmt.Sprintf("New Tweet from @%s", msg.AuthorUsername),
		URL:   msg.URL,
		Color: colorTweet,
		Author: &embedAuthor{
			Name: msg.AuthorName,
			URL:  "https://twitter.com/" + msg.AuthorUsername,
		},
		Footer: embedFooter{
			Text: fmt.Sprintf("Likes: %s | Retweets: %s | Twitter Bot",
				formatCount(msg.LikeCount), formatCount(msg.RetweetCount)),
		},
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	if len(msg.MediaURLs) > 0 {
		e.Image = &embedImage{URL: msg.MediaURLs[0]}
		if len(msg.MediaURLs) > 1 {
			description += "\n\n**Additional Media:**\n" + strings.Join(msg.MediaURLs[1:], "\n")
		}
	}
	e.Description = description

	return e
}

// SendError delivers an error notification to webhookURL.
func (s *Sender) SendError(ctx context.Context, webhookURL, message string) error {
	e := embed{
		Title:       "❌ Bot Error Notification ❌",
		Description: message,
		Color:       colorError,
		Footer:      embedFooter{Text: "Twitter-Discord Bot Error"},
		Timestamp:   s.now().UTC().Format(time.RFC3339),
	}
	if err := s.post(ctx, webhookURL, e); err != nil {
		return err
	}
	s.logger.Info("sent error notification to discord")
	return nil
}

// NotifyError reports message to the error webhook. When no webhook
// is configured, or delivery fails, the message is only logged.
// NotifyError never returns an error.
func (s *Sender) NotifyError(ctx context.Context, webhookURL, message string) {
	if webhookURL == "" {
		s.logger.Error("error notification webhook not configured", "message", message)
		return
	}
	s.logger.Error("sending error notification", "message", message)
	if err := s.SendError(ctx, webhookURL, message); err != nil {
		s.logger.Error("send error notification", "error", err)
	}
}

func (s *Sender) post(ctx context.Context, webhookURL string, e embed) error {
	if strings.TrimSpace(webhookURL) == "" {
		return errors.New("webhook url is required")
	}

	payload, err := json.Marshal(webhookPayload{Embeds: []embed{e}})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

func formatCount(n *int) string {
	if n == nil {
		return "N/A"
	}
	return strconv.Itoa(*n)
}
