package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"dadmind/internal/domain"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newAssessCmd(app *App) *cobra.Command {
	var (
		answersPath string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score a saved answer set and print the report and action plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd, app, answersPath, date)
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "JSON file mapping question id to option id")
	cmd.Flags().StringVar(&date, "date", "", "Assessment date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func runAssess(cmd *cobra.Command, app *App, answersPath, date string) error {
	data, err := os.ReadFile(answersPath)
	if err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}
	var answers domain.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("parsing answers: %w", err)
	}

	when := time.Now()
	if date != "" {
		when, err = time.Parse(dateLayout, date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
		}
	}

	engine := app.Engine
	if engine == nil {
		engine = domain.DefaultEngine()
	}
	result := engine.Assess(answers)

	out := cmd.OutOrStdout()
	fmt.Fprint(out, engine.DetailedReport(result, when))
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Join(domain.ActionPlan(result), "\n"))
	return nil
}
