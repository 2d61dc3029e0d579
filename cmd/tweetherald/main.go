package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tweetherald/tweetherald/internal/cli"
)

func main() {
	// A local .env can supply TWITTER_BEARER_TOKEN during development.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
