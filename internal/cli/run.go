package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tweetherald/tweetherald/internal/config"
	"github.com/tweetherald/tweetherald/internal/discord"
	"github.com/tweetherald/tweetherald/internal/relay"
	"github.com/tweetherald/tweetherald/internal/seen"
	"github.com/tweetherald/tweetherald/internal/twitter"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll once and forward new matches to Discord",
	RunE:  runAction,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAction(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sender := discord.NewSender(logger)

	token := cfg.BearerToken()
	if token == "" {
		msg := fmt.Sprintf("Twitter Bearer Token not found. Please set the '%s' environment variable.", config.BearerTokenEnvVar)
		sender.NotifyError(ctx, cfg.NotificationsWebhookURL, msg)
		return errors.New(msg)
	}

	client, err := twitter.NewClient(token)
	if err != nil {
		msg := fmt.Sprintf("Error initializing Twitter client: %v", err)
		sender.NotifyError(ctx, cfg.NotificationsWebhookURL, msg)
		return errors.New(msg)
	}

	store, err := seen.Open(cfg.SeenFile)
	if err != nil {
		return fmt.Errorf("open seen store: %w", err)
	}

	summary, err := relay.New(cfg, client, sender, store, logger).Run(ctx)
	if err != nil {
		sender.NotifyError(ctx, cfg.NotificationsWebhookURL, fmt.Sprintf("Relay run failed: %v", err))
		return err
	}

	fmt.Printf("Processed %d pairs, dispatched %d tweets", summary.Pairs, summary.Dispatched)
	if len(summary.FailedPairs) > 0 {
		fmt.Printf(" (%d failed: %s)", len(summary.FailedPairs), strings.Join(summary.FailedPairs, ", "))
	}
	fmt.Println()

	return nil
}
