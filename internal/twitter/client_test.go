package twitter

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func clientWithTransport(rt roundTripFunc) *Client {
	c, _ := NewClient("test-token")
	c.baseURL = "https://twitter.test"
	c.client = &http.Client{Timeout: searchTimeout, Transport: rt}
	return c
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const searchResponse = `{
	"data": [
		{
			"id": "111",
			"text": "go 1.25 released",
			"author_id": "u1",
			"created_at": "2026-08-23T10:00:00Z",
			"public_metrics": {"retweet_count": 3, "like_count": 12, "reply_count": 1, "quote_count": 0},
			"attachments": {"media_keys": ["m1", "m2"]}
		}
	],
	"includes": {
		"users": [
			{"id": "u1", "name": "Go Team", "username": "golang", "verified": true, "public_metrics": {"followers_count": 9000}}
		],
		"media": [
			{"media_key": "m1", "type": "photo", "url": "https://pbs.test/a.jpg"},
			{"media_key": "m2", "type": "video", "preview_image_url": "https://pbs.test/b.jpg"}
		]
	},
	"meta": {"result_count": 1, "newest_id": "111", "oldest_id": "111"}
}`

func TestNewClient_EmptyToken(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := NewClient("  "); err == nil {
		t.Fatal("expected error for blank token")
	}
}

func TestSearchRecent_Request(t *testing.T) {
	var captured *http.Request
	c := clientWithTransport(func(req *http.Request) (*http.Response, error) {
		captured = req
		return response(http.StatusOK, searchResponse), nil
	})

	if _, err := c.SearchRecent(context.Background(), `"#golang" OR rust`, 50); err != nil {
		t.Fatalf("search: %v", err)
	}

	if captured.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", captured.Method)
	}
	if captured.URL.Path != "/2/tweets/search/recent" {
		t.Errorf("path = %s", captured.URL.Path)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("authorization = %q", got)
	}

	params := captured.URL.Query()
	if got := params.Get("query"); got != `"#golang" OR rust` {
		t.Errorf("query param = %q", got)
	}
	if got := params.Get("max_results"); got != "50" {
		t.Errorf("max_results = %q", got)
	}
	if got := params.Get("expansions"); got != "author_id,attachments.media_keys" {
		t.Errorf("expansions = %q", got)
	}
	for param, want := range map[string]string{
		"tweet.fields": tweetFields,
		"user.fields":  userFields,
		"media.fields": mediaFields,
	} {
		if got := params.Get(param); got != want {
			t.Errorf("%s = %q, want %q", param, got, want)
		}
	}
}

func TestSearchRecent_Decode(t *testing.T) {
	c := clientWithTransport(func(*http.Request) (*http.Response, error) {
		return response(http.StatusOK, searchResponse), nil
	})

	result, err := c.SearchRecent(context.Background(), "golang", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(result.Tweets) != 1 {
		t.Fatalf("tweets = %d, want 1", len(result.Tweets))
	}
	tweet := result.Tweets[0]
	if tweet.ID != "111" || tweet.AuthorID != "u1" {
		t.Errorf("tweet = %+v", tweet)
	}
	want := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	if !tweet.CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", tweet.CreatedAt, want)
	}
	if tweet.PublicMetrics == nil || tweet.PublicMetrics.LikeCount != 12 || tweet.PublicMetrics.RetweetCount != 3 {
		t.Errorf("public metrics = %+v", tweet.PublicMetrics)
	}
	if tweet.Attachments == nil || len(tweet.Attachments.MediaKeys) != 2 {
		t.Errorf("attachments = %+v", tweet.Attachments)
	}

	users := result.UsersByID()
	author, ok := users["u1"]
	if !ok {
		t.Fatal("author not indexed")
	}
	if author.Username != "golang" || !author.Verified || author.PublicMetrics.FollowersCount != 9000 {
		t.Errorf("author = %+v", author)
	}

	media := result.MediaByKey()
	if m := media["m1"]; m.Type != "photo" || m.URL != "https://pbs.test/a.jpg" {
		t.Errorf("media m1 = %+v", m)
	}
	if m := media["m2"]; m.Type != "video" || m.PreviewImageURL != "https://pbs.test/b.jpg" {
		t.Errorf("media m2 = %+v", m)
	}
}

func TestSearchRecent_EmptyQuery(t *testing.T) {
	c := clientWithTransport(func(*http.Request) (*http.Response, error) {
		t.Fatal("request should not be made for empty query")
		return nil, nil
	})
	if _, err := c.SearchRecent(context.Background(), "  ", 10); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchRecent_NonOKStatus(t *testing.T) {
	c := clientWithTransport(func(*http.Request) (*http.Response, error) {
		return response(http.StatusTooManyRequests, `{"title":"Too Many Requests"}`), nil
	})

	_, err := c.SearchRecent(context.Background(), "golang", 10)
	if err == nil {
		t.Fatal("expected error for 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status in message", err)
	}
}

func TestSearchRecent_OmitsMaxResultsWhenZero(t *testing.T) {
	c := clientWithTransport(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Has("max_results") {
			t.Error("max_results should be omitted when zero")
		}
		return response(http.StatusOK, `{"meta":{"result_count":0}}`), nil
	})

	result, err := c.SearchRecent(context.Background(), "golang", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.Tweets) != 0 {
		t.Errorf("tweets = %d, want 0", len(result.Tweets))
	}
}
