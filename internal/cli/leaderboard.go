package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult

			path := "/api/v1/leaderboard"
			if count > 0 {
				path = fmt.Sprintf("%s?n=%d", path, count)
			}

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of entries to fetch (server default if unset)")

	return cmd
}
