// Package twitter is a minimal Twitter API v2 client covering the
// recent-search endpoint.
package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.twitter.com"
	searchTimeout  = 30 * time.Second

	expansions  = "author_id,attachments.media_keys"
	tweetFields = "id,text,author_id,created_at,public_metrics,attachments"
	userFields  = "name,username,public_metrics,verified"
	mediaFields = "url,preview_image_url,type"
)

// Client calls the Twitter API v2 with an app-only bearer token.
type Client struct {
	bearerToken string
	baseURL     string
	client      *http.Client
}

// NewClient creates a Twitter client. The bearer token is required.
func NewClient(bearerToken string) (*Client, error) {
	if strings.TrimSpace(bearerToken) == "" {
		return nil, errors.New("twitter: bearer token is required")
	}
	return &Client{
		bearerToken: bearerToken,
		baseURL:     defaultBaseURL,
		client:      &http.Client{Timeout: searchTimeout},
	}, nil
}

// PublicMetrics holds a tweet's public engagement counts.
type PublicMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

// Attachments references media attached to a tweet.
type Attachments struct {
	MediaKeys []string `json:"media_keys"`
}

type Tweet struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	AuthorID      string         `json:"author_id"`
	CreatedAt     time.Time      `json:"created_at"`
	PublicMetrics *PublicMetrics `json:"public_metrics"`
	Attachments   *Attachments   `json:"attachments"`
}

// UserMetrics holds an author's public counters.
type UserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}

type User struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Username      string      `json:"username"`
	Verified      bool        `json:"verified"`
	PublicMetrics UserMetrics `json:"public_metrics"`
}

type Media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	PreviewImageURL string `json:"preview_image_url"`
}

// Includes carries the expansion objects returned alongside tweets.
type Includes struct {
	Users []User  `json:"users"`
	Media []Media `json:"media"`
}

// SearchResult is the decoded recent-search response.
type SearchResult struct {
	Tweets   []Tweet  `json:"data"`
	Includes Includes `json:"includes"`
	Meta     struct {
		ResultCount int    `json:"result_count"`
		NewestID    string `json:"newest_id"`
		OldestID    string `json:"oldest_id"`
	} `json:"meta"`
}

// UsersByID indexes the expanded authors by their user ID.
func (r *SearchResult) UsersByID() map[string]User {
	users := make(map[string]User, len(r.Includes.Users))
	for _, u := range r.Includes.Users {
		users[u.ID] = u
	}
	return users
}

// MediaByKey indexes the expanded media objects by media key.
func (r *SearchResult) MediaByKey() map[string]Media {
	media := make(map[string]Media, len(r.Includes.Media))
	for _, m := range r.Includes.Media {
		media[m.MediaKey] = m
	}
	return media
}

// SearchRecent fetches up to maxResults tweets matching query from
// the recent-search endpoint, requesting author and media expansions
// in the same call.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("twitter: query is required")
	}

	params := url.Values{}
	params.Set("query", query)
	if maxResults > 0 {
		params.Set("max_results", strconv.Itoa(maxResults))
	}
	params.Set("expansions", expansions)
	params.Set("tweet.fields", tweetFields)
	params.Set("user.fields", userFields)
	params.Set("media.fields", mediaFields)

	endpoint := c.baseURL + "/2/tweets/search/recent?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search recent tweets: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("twitter: search returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return &result, nil
}
