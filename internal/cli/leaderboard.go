package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "leaderboard <track-id>",
		Short: "Print one page of a track's leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trackID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid track id: %w", err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if limit <= 0 {
				limit = a.cfg.Leaderboard.DefaultPageSize
			}

			board, err := a.leaderboard.GetLeaderboard(cmd.Context(), trackID, offset, limit)
			if err != nil {
				return err
			}

			out := NewOutput(outputFormat)
			out.Print(board)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (default: configured page size)")

	return cmd
}
