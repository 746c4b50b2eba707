package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// scoreInput is the file format of "assessctl score": the same body the
// /api/assess endpoint takes, minus the course.
type scoreInput struct {
	Questions []domain.Question `json:"questions"`
	Answers   []domain.Answer   `json:"answers"`
}

func newScoreCmd(app *App) *cobra.Command {
	var course, inputPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a static yes/no/maybe assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			var in scoreInput
			if err := json.Unmarshal(raw, &in); err != nil {
				return fmt.Errorf("%w: invalid input: %v", domain.ErrInvalidArgument, err)
			}
			if len(in.Questions) == 0 {
				q, qerr := app.Questions.GetQuestions(cmd.Context(), course)
				if qerr != nil {
					return qerr
				}
				in.Questions = q.Questions
			}
			res, err := app.Scoring.Score(cmd.Context(), course, in.Questions, in.Answers)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course name")
	cmd.Flags().StringVar(&inputPath, "input", "", `Answers JSON file, or "-" for stdin`)
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
