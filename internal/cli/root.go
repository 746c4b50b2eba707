// Package cli implements assessctl, the operator command line for the
// assessment engine.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/usecase"
)

// App holds the services the commands run against.
type App struct {
	Catalog   *config.Catalog
	Questions usecase.QuestionService
	Scoring   usecase.ScoringService
	Reports   *usecase.ReportPipeline
	// OfflineReports runs on a gateway that always fails, so only the
	// heuristic layer produces reports.
	OfflineReports *usecase.ReportPipeline
}

// NewRootCmd creates the top-level "assessctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "assessctl",
		Short:         "Inspect courses, question banks, reports and scores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCoursesCmd(app),
		newQuestionsCmd(app),
		newReportCmd(app),
		newScoreCmd(app),
	)

	return root
}

func newCoursesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List supported courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, c := range app.Catalog.Courses {
				if _, err := fmt.Fprintln(out, c); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newQuestionsCmd(app *App) *cobra.Command {
	var course string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the static question set for a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := app.Questions.GetQuestions(cmd.Context(), course)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), set)
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course name")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	// #nosec G304 -- operator-supplied input file
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return b, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
