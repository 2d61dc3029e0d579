// Package config loads and validates the tweetherald configuration
// document.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile  = "config.yaml"
	DefaultSeenFile    = "sent_tweets.txt"
	DefaultSearchLimit = 50

	// BearerTokenEnvVar supplies the Twitter credential; it takes
	// precedence over the twitter_bearer_token config value.
	BearerTokenEnvVar = "TWITTER_BEARER_TOKEN"
)

type Config struct {
	NotificationsWebhookURL string             `yaml:"notifications_webhook_url"`
	TwitterBearerToken      string             `yaml:"twitter_bearer_token"`
	SearchLimitPerKeyword   int                `yaml:"search_limit_per_keyword"`
	SeenFile                string             `yaml:"seen_file"`
	GlobalFilters           FilterSet          `yaml:"global_filters"`
	KeywordChannels         map[string]Channel `yaml:"keyword_channels"`

	// Resolved from the environment at load time.
	bearerToken string
}

// Channel describes one destination for a configured search query.
// When Keywords is set the query is built from Keywords and Logic;
// otherwise the keyword_channels map key is used verbatim.
type Channel struct {
	DiscordWebhookURL string    `yaml:"discord_webhook_url"`
	Keywords          []string  `yaml:"keywords"`
	Logic             string    `yaml:"logic"`
	UserFilters       FilterSet `yaml:"user_filters"`
}

// FilterSet holds optional author filters. Pointer and nil-slice
// fields distinguish "unset" from an explicit zero so channel values
// can override global ones key-by-key.
type FilterSet struct {
	MinFollowers       *int     `yaml:"min_followers"`
	OnlyVerified       *bool    `yaml:"only_verified"`
	WhitelistUsernames []string `yaml:"whitelist_usernames"`
	BlacklistUsernames []string `yaml:"blacklist_usernames"`
}

// Filters is a fully resolved filter set ready for matching. Handle
// sets are lowercased; an empty whitelist means unrestricted and an
// empty blacklist means nothing excluded.
type Filters struct {
	MinFollowers int
	OnlyVerified bool
	Whitelist    map[string]struct{}
	Blacklist    map[string]struct{}
}

// MergeOver resolves fs against global defaults: every field set on
// fs overrides the corresponding global field, unset fields inherit.
func (fs FilterSet) MergeOver(global FilterSet) Filters {
	var out Filters

	if global.MinFollowers != nil {
		out.MinFollowers = *global.MinFollowers
	}
	if fs.MinFollowers != nil {
		out.MinFollowers = *fs.MinFollowers
	}

	if global.OnlyVerified != nil {
		out.OnlyVerified = *global.OnlyVerified
	}
	if fs.OnlyVerified != nil {
		out.OnlyVerified = *fs.OnlyVerified
	}

	whitelist := global.WhitelistUsernames
	if fs.WhitelistUsernames != nil {
		whitelist = fs.WhitelistUsernames
	}
	blacklist := global.BlacklistUsernames
	if fs.BlacklistUsernames != nil {
		blacklist = fs.BlacklistUsernames
	}

	out.Whitelist = lowerSet(whitelist)
	out.Blacklist = lowerSet(blacklist)
	return out
}

func lowerSet(usernames []string) map[string]struct{} {
	set := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		u = strings.ToLower(strings.TrimSpace(u))
		if u == "" {
			continue
		}
		set[u] = struct{}{}
	}
	return set
}

// Load reads the config document from path, applies defaults,
// resolves environment variables, and validates.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	resolveEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// BearerToken returns the resolved Twitter credential: the
// environment variable when set, otherwise the config value. Empty
// means no credential is available.
func (c *Config) BearerToken() string {
	return c.bearerToken
}

func applyDefaults(cfg *Config) {
	if cfg.SearchLimitPerKeyword == 0 {
		cfg.SearchLimitPerKeyword = DefaultSearchLimit
	}
	if cfg.SeenFile == "" {
		cfg.SeenFile = DefaultSeenFile
	}
}

func resolveEnv(cfg *Config) {
	cfg.bearerToken = os.Getenv(BearerTokenEnvVar)
	if cfg.bearerToken == "" {
		cfg.bearerToken = cfg.TwitterBearerToken
	}
}

func validate(cfg *Config) error {
	if len(cfg.KeywordChannels) == 0 {
		return errors.New("keyword_channels: at least one channel must be configured")
	}
	for query, channel := range cfg.KeywordChannels {
		if strings.TrimSpace(channel.DiscordWebhookURL) == "" {
			return fmt.Errorf("keyword_channels[%q]: discord_webhook_url is required", query)
		}
	}
	if cfg.SearchLimitPerKeyword < 0 {
		return fmt.Errorf("search_limit_per_keyword: must be non-negative, got %d", cfg.SearchLimitPerKeyword)
	}
	return nil
}
