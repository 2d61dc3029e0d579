package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const exampleConfig = `# tweetherald configuration
#
# The bearer token can also be supplied via the TWITTER_BEARER_TOKEN
# environment variable, which takes precedence over this file.

notifications_webhook_url: ""
twitter_bearer_token: ""
search_limit_per_keyword: 50
seen_file: sent_tweets.txt

global_filters:
  min_followers: 0
  only_verified: false
  whitelist_usernames: []
  blacklist_usernames: []

keyword_channels:
  "golang release":
    discord_webhook_url: "https://discord.com/api/webhooks/..."
    keywords: ["golang", "go release"]
    logic: OR
    user_filters:
      min_followers: 100
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example config file",
	RunE:  initAction,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initAction(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("  exists: %s\n", configPath)
		return nil
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", configPath, err)
	}
	fmt.Printf("Initialized %s.\n", configPath)
	return nil
}
