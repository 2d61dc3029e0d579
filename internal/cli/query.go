package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tweetherald/tweetherald/internal/query"
)

var queryLogic string

var queryCmd = &cobra.Command{
	Use:   "query [keywords...]",
	Short: "Print the search query built from keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE:  queryAction,
}

func init() {
	queryCmd.Flags().StringVar(&queryLogic, "logic", "OR", "keyword combination logic (AND or OR)")
	rootCmd.AddCommand(queryCmd)
}

func queryAction(_ *cobra.Command, args []string) error {
	logic, ok := query.ParseLogic(queryLogic)
	if !ok {
		fmt.Fprintf(os.Stderr, "warning: unknown logic %q, defaulting to OR\n", queryLogic)
	}
	fmt.Println(query.Build(args, logic))
	return nil
}
