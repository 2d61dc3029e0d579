// Package relay implements the filter-and-dispatch pipeline: fetch
// recent tweets for each configured channel, filter by author
// attributes and same-day recency, forward unseen matches to Discord,
// and record them as seen.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tweetherald/tweetherald/internal/config"
	"github.com/tweetherald/tweetherald/internal/discord"
	"github.com/tweetherald/tweetherald/internal/query"
	"github.com/tweetherald/tweetherald/internal/seen"
	"github.com/tweetherald/tweetherald/internal/twitter"
)

// maxDispatchPerPair caps how many tweets one channel receives per
// run, independent of the configured fetch limit.
const maxDispatchPerPair = 5

// Searcher fetches candidate tweets for a query.
type Searcher interface {
	SearchRecent(ctx context.Context, query string, maxResults int) (*twitter.SearchResult, error)
}

// Sender delivers notifications to Discord webhooks.
type Sender interface {
	Send(ctx context.Context, webhookURL string, msg discord.TweetMessage) error
	NotifyError(ctx context.Context, webhookURL, message string)
}

// Relay processes every configured (query, channel) pair once per Run.
type Relay struct {
	cfg      *config.Config
	searcher Searcher
	sender   Sender
	seen     *seen.Store
	logger   *slog.Logger
	now      func() time.Time
}

func New(cfg *config.Config, searcher Searcher, sender Sender, seenStore *seen.Store, logger *slog.Logger) *Relay {
	return &Relay{
		cfg:      cfg,
		searcher: searcher,
		sender:   sender,
		seen:     seenStore,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary reports what a single run did.
type Summary struct {
	Pairs       int
	Dispatched  int
	FailedPairs []string
}

// Run processes all configured pairs sequentially. A failing pair is
// logged and reported in the summary without aborting the others; Run
// returns an error only when every pair failed.
func (r *Relay) Run(ctx context.Context) (Summary, error) {
	logger := r.logger.With("run_id", uuid.NewString())

	if n, err := r.seen.Load(); err != nil {
		logger.Error("load seen set, continuing with partial set", "error", err)
	} else {
		logger.Info("loaded seen set", "ids", n)
	}

	queries := sortedQueries(r.cfg.KeywordChannels)
	summary := Summary{Pairs: len(queries)}

	for _, q := range queries {
		sent, err := r.processPair(ctx, logger, q, r.cfg.KeywordChannels[q])
		summary.Dispatched += sent
		if err != nil {
			logger.Error("pair failed", "query", q, "error", err)
			summary.FailedPairs = append(summary.FailedPairs, q)
		}
	}

	if summary.Pairs > 0 && len(summary.FailedPairs) == summary.Pairs {
		return summary, fmt.Errorf("all %d configured pairs failed", summary.Pairs)
	}
	return summary, nil
}

func (r *Relay) processPair(ctx context.Context, logger *slog.Logger, key string, channel config.Channel) (int, error) {
	q := key
	if len(channel.Keywords) > 0 {
		logic, ok := query.ParseLogic(channel.Logic)
		if !ok {
			logger.Warn("unknown logic, defaulting to OR", "query", key, "logic", channel.Logic)
		}
		q = query.Build(channel.Keywords, logic)
	}
	// An empty query is rejected here rather than passed to the
	// provider, which treats it as a bad request.
	if strings.TrimSpace(q) == "" {
		return 0, errors.New("empty search query")
	}

	filters := channel.UserFilters.MergeOver(r.cfg.GlobalFilters)

	result, err := r.searcher.SearchRecent(ctx, q, r.cfg.SearchLimitPerKeyword)
	if err != nil {
		return 0, fmt.Errorf("search %q: %w", q, err)
	}
	if len(result.Tweets) == 0 {
		logger.Info("no results", "query", q)
		return 0, nil
	}

	users := result.UsersByID()
	media := result.MediaByKey()

	sent := 0
	for _, tweet := range result.Tweets {
		if sent >= maxDispatchPerPair {
			break
		}
		if !r.eligible(tweet, users, filters) {
			continue
		}

		author := users[tweet.AuthorID]
		msg := discord.TweetMessage{
			AuthorName:     author.Name,
			AuthorUsername: author.Username,
			Text:           tweet.Text,
			URL:            fmt.Sprintf("https://twitter.com/%s/status/%s", author.Username, tweet.ID),
			MediaURLs:      mediaURLs(tweet, media),
		}
		if tweet.PublicMetrics != nil {
			likes := tweet.PublicMetrics.LikeCount
			retweets := tweet.PublicMetrics.RetweetCount
			msg.LikeCount = &likes
			msg.RetweetCount = &retweets
		}

		if err := r.sender.Send(ctx, channel.DiscordWebhookURL, msg); err != nil {
			// The id is recorded regardless: a failed delivery is never
			// retried, trading redelivery for no duplicates.
			logger.Error("send to discord", "query", key, "tweet_id", tweet.ID, "error", err)
		}
		if err := r.seen.Record(tweet.ID); err != nil {
			logger.Error("record seen id", "tweet_id", tweet.ID, "error", err)
		}
		sent++
	}

	logger.Info("pair processed", "query", q, "fetched", len(result.Tweets), "dispatched", sent)
	return sent, nil
}

// eligible applies the recency, dedup, and author filters in order:
// same-day first, then seen-set, author presence, whitelist,
// blacklist, follower minimum, verified flag. A handle on both lists
// is excluded.
func (r *Relay) eligible(tweet twitter.Tweet, users map[string]twitter.User, filters config.Filters) bool {
	if !sameDay(tweet.CreatedAt.UTC(), r.now().UTC()) {
		return false
	}
	if r.seen.Contains(tweet.ID) {
		return false
	}

	author, ok := users[tweet.AuthorID]
	if !ok {
		return false
	}

	username := strings.ToLower(author.Username)
	if len(filters.Whitelist) > 0 {
		if _, ok := filters.Whitelist[username]; !ok {
			return false
		}
	}
	if _, ok := filters.Blacklist[username]; ok {
		return false
	}
	if author.PublicMetrics.FollowersCount < filters.MinFollowers {
		return false
	}
	if filters.OnlyVerified && !author.Verified {
		return false
	}

	return true
}

// mediaURLs collects usable media URLs in attachment order: direct
// URLs for photos and animated GIFs, preview images for videos.
// Attachments without a usable URL are skipped.
func mediaURLs(tweet twitter.Tweet, media map[string]twitter.Media) []string {
	if tweet.Attachments == nil {
		return nil
	}

	var urls []string
	for _, key := range tweet.Attachments.MediaKeys {
		m, ok := media[key]
		if !ok {
			continue
		}
		switch m.Type {
		case "photo", "animated_gif":
			if m.URL != "" {
				urls = append(urls, m.URL)
			}
		case "video":
			if m.PreviewImageURL != "" {
				urls = append(urls, m.PreviewImageURL)
			}
		}
	}
	return urls
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortedQueries(channels map[string]config.Channel) []string {
	keys := make([]string, 0, len(channels))
	for q := range channels {
		keys = append(keys, q)
	}
	sort.Strings(keys)
	return keys
}
