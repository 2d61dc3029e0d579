package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tweetherald/tweetherald/internal/config"
	"github.com/tweetherald/tweetherald/internal/query"
	"github.com/tweetherald/tweetherald/internal/seen"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration, credentials, and seen-file access",
	RunE:  validateAction,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateAction(_ *cobra.Command, _ []string) error {
	ok := true

	cfg, err := config.Load(configPath)
	if err != nil {
		printCheck(false, "config %s: %v", configPath, err)
		return fmt.Errorf("some checks failed")
	}
	printCheck(true, "config %s (%d keyword channels)", configPath, len(cfg.KeywordChannels))

	queries := make([]string, 0, len(cfg.KeywordChannels))
	for q := range cfg.KeywordChannels {
		queries = append(queries, q)
	}
	sort.Strings(queries)

	for _, q := range queries {
		channel := cfg.KeywordChannels[q]
		effective := q
		if len(channel.Keywords) > 0 {
			logic, known := query.ParseLogic(channel.Logic)
			if !known {
				printInfo("channel %q: unknown logic %q, OR will be used", q, channel.Logic)
			}
			effective = query.Build(channel.Keywords, logic)
		}
		if strings.TrimSpace(effective) == "" {
			printCheck(false, "channel %q: effective query is empty", q)
			ok = false
		} else {
			printCheck(true, "channel %q -> %s", q, effective)
		}
	}

	if cfg.BearerToken() == "" {
		printCheck(false, "twitter bearer token (set %s or twitter_bearer_token)", config.BearerTokenEnvVar)
		ok = false
	} else {
		printCheck(true, "twitter bearer token")
	}

	if cfg.NotificationsWebhookURL == "" {
		printInfo("notifications webhook not configured, startup errors will only be logged")
	} else {
		printCheck(true, "notifications webhook")
	}

	store, err := seen.Open(cfg.SeenFile)
	if err != nil {
		printCheck(false, "seen file %s: %v", cfg.SeenFile, err)
		ok = false
	} else if n, err := store.Load(); err != nil {
		printCheck(false, "seen file %s: %v", cfg.SeenFile, err)
		ok = false
	} else {
		printCheck(true, "seen file %s (%d ids)", cfg.SeenFile, n)
	}

	if !ok {
		return fmt.Errorf("some checks failed")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}

func printCheck(pass bool, format string, args ...any) {
	mark := "FAIL"
	if pass {
		mark = " OK "
	}
	fmt.Printf("[%s] %s\n", mark, fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Printf("[INFO] %s\n", fmt.Sprintf(format, args...))
}
