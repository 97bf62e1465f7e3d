package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRankingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Ranking computation commands",
	}

	cmd.AddCommand(newRankingsRebuildCmd())
	cmd.AddCommand(newRankingsListCmd())
	cmd.AddCommand(newRankingsPredictCmd())

	return cmd
}

func newRankingsRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Recompute all ratings from the full history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.rankings.Rebuild(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(outputFormat)
			out.Print(summary)
			return nil
		},
	}
}

func newRankingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Rebuild and print the full ranking table",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.rankings.Rebuild(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(outputFormat)
			out.Print(a.rankings.GetRankings())
			return nil
		},
	}
}

func newRankingsPredictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <user1-id> <user2-id>",
		Short: "Predict the outcome of a head-to-head matchup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user1, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user1 id: %w", err)
			}
			user2, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid user2 id: %w", err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.rankings.Rebuild(cmd.Context()); err != nil {
				return err
			}

			p, ok := a.rankings.PredictMatch(user1, user2)
			if !ok {
				return fmt.Errorf("no rating available for one of the users")
			}

			prediction := Prediction{
				User1:       args[0],
				User2:       args[1],
				Probability: p,
			}
			if odds, ok := a.rankings.MatchOdds(user1, user2); ok {
				prediction.User1Odds = odds.User1.String()
				prediction.User2Odds = odds.User2.String()
			}

			out := NewOutput(outputFormat)
			out.Print(prediction)
			return nil
		},
	}
}
