package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	"github.com/fairyhunter13/skillbridge-assessor/pkg/textx"
)

func newReportCmd(app *App) *cobra.Command {
	var course, historyPath string
	var offline bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the final report for a recorded conversation",
		Long: "Runs the report pipeline over a conversation history file: a JSON array of\n" +
			`{"type": "user"|"ai", "content": "..."} messages. Use "-" to read stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			course = textx.SanitizeLine(course)
			if course == "" {
				return fmt.Errorf("%w: course is required", domain.ErrInvalidArgument)
			}
			raw, err := readInput(cmd, historyPath)
			if err != nil {
				return err
			}
			var history []domain.Message
			if err := json.Unmarshal(raw, &history); err != nil {
				return fmt.Errorf("%w: history must be a JSON array of messages: %v", domain.ErrInvalidArgument, err)
			}

			pipeline := app.Reports
			if offline {
				pipeline = app.OfflineReports
			}
			report := pipeline.BuildReport(cmd.Context(), course, history)
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course name")
	cmd.Flags().StringVar(&historyPath, "history", "", `Conversation history JSON file, or "-" for stdin`)
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the LLM and use the heuristic report only")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("history")
	return cmd
}
