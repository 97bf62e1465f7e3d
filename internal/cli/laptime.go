package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/trackday/internal/laptime"
	"github.com/yourusername/trackday/internal/models"
)

func newLaptimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laptime",
		Short: "Lap time management commands",
	}

	cmd.AddCommand(newLaptimeSubmitCmd())
	cmd.AddCommand(newLaptimeRemoveCmd())

	return cmd
}

func newLaptimeSubmitCmd() *cobra.Command {
	var (
		userIDArg  string
		trackIDArg string
		timeArg    string
		durationMs int64
		amount     int
		comment    string
		dnf        bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a lap time for a user on a track",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userIDArg)
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
			trackID, err := uuid.Parse(trackIDArg)
			if err != nil {
				return fmt.Errorf("invalid track id: %w", err)
			}
			if timeArg != "" {
				parsed, err := laptime.Parse(timeArg)
				if err != nil {
					return err
				}
				durationMs = parsed
			}
			if !dnf && durationMs <= 0 {
				return fmt.Errorf("--time or --duration-ms required unless --dnf is set")
			}

			entry := &models.TimeEntry{
				UserID:  userID,
				TrackID: trackID,
				Amount:  amount,
			}
			if !dnf {
				duration := models.Milliseconds(durationMs)
				entry.Duration = &duration
			}
			if comment != "" {
				entry.Comment = &comment
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.leaderboard.SubmitTimeEntry(cmd.Context(), entry); err != nil {
				return err
			}

			out := NewOutput(outputFormat)
			out.PrintMessage(fmt.Sprintf("Recorded lap %s", entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&userIDArg, "user", "", "User ID (required)")
	cmd.Flags().StringVar(&trackIDArg, "track", "", "Track ID (required)")
	cmd.Flags().StringVar(&timeArg, "time", "", `Lap time as "m:ss.cc"`)
	cmd.Flags().Int64Var(&durationMs, "duration-ms", 0, "Lap time in milliseconds")
	cmd.Flags().IntVar(&amount, "amount", 1, "Number of attempts this entry represents")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	cmd.Flags().BoolVar(&dnf, "dnf", false, "Record a DNF instead of a timed lap")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("track")

	return cmd
}

func newLaptimeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Soft-delete a recorded lap time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry id: %w", err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.leaderboard.RemoveTimeEntry(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(outputFormat)
			out.PrintMessage(fmt.Sprintf("Removed lap %s", id))
			return nil
		},
	}
}
