package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/ripasso/internal/cli/formatter"
	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/export"
	"github.com/alexanderramin/ripasso/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and follow study plans",
	}

	cmd.AddCommand(
		newPlanGenerateCmd(app),
		newPlanNewCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanTodayCmd(app),
		newPlanToggleCmd(app),
		newPlanCheckCmd(app),
		newPlanStatusCmd(app),
		newPlanExportCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	var (
		file         string
		examDate     string
		dailyMinutes int
		targetGrade  int
		topics       []string
		profileName  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study plan from a planning file or flags",
		Example: `  ripasso plan generate --file diritto.yaml
  ripasso plan generate --exam-date 2025-06-30 --minutes 90 --topic Contratti --topic Obbligazioni`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &importer.PlanFile{}
			baseDir := ""
			if file != "" {
				loaded, err := importer.LoadPlanFile(file)
				if err != nil {
					return err
				}
				f = loaded
				baseDir = filepath.Dir(file)
			}

			flags := cmd.Flags()
			if flags.Changed("exam-date") {
				f.ExamDate = examDate
			}
			if flags.Changed("minutes") {
				f.DailyMinutes = dailyMinutes
			}
			if flags.Changed("grade") {
				f.TargetGrade = targetGrade
			}
			if flags.Changed("topic") {
				f.Topics = topics
			}
			if flags.Changed("profile") {
				f.ProfileName = profileName
				f.Profile = nil
			}

			return generatePlan(cmd, app, f, baseDir)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON planning file")
	cmd.Flags().StringVar(&examDate, "exam-date", "", "exam date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&dailyMinutes, "minutes", 0, "study minutes per day (default 120)")
	cmd.Flags().IntVar(&targetGrade, "grade", 0, "target grade out of 30")
	cmd.Flags().StringSliceVarP(&topics, "topic", "t", nil, "course topic (repeatable)")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "saved examination profile to plan for")

	return cmd
}

func newPlanNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a study plan with an interactive wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("plan new needs an interactive terminal; use `ripasso plan generate` instead")
			}

			profiles, err := app.Profiles.List(cmd.Context())
			if err != nil {
				return err
			}
			names := make([]string, len(profiles))
			for i, p := range profiles {
				names[i] = p.Name
			}

			values := &planWizardValues{}
			if err := newPlanWizardForm(values, names).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(out(cmd), formatter.Dim("Cancelled."))
					return nil
				}
				return err
			}
			if !values.Confirmed {
				fmt.Fprintln(out(cmd), formatter.Dim("Cancelled."))
				return nil
			}
			return generatePlan(cmd, app, values.toPlanFile(), "")
		},
	}
}

// generatePlan validates a planning file, resolves its profile and stores
// the resulting plan.
func generatePlan(cmd *cobra.Command, app *App, f *importer.PlanFile, baseDir string) error {
	ctx := cmd.Context()
	if err := importer.AsError(importer.ValidatePlanFile(f, baseDir)); err != nil {
		return err
	}
	in, err := importer.ConvertPlan(f, baseDir)
	if err != nil {
		return err
	}
	if f.ProfileName != "" {
		profile, err := app.Profiles.Get(ctx, f.ProfileName)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}
		in.Profile = *profile
	}

	plan, err := app.Plans.Generate(ctx, in)
	if err != nil {
		return fmt.Errorf("generating plan: %w", err)
	}

	w := out(cmd)
	fmt.Fprintf(w, "%s Plan %s: %d days until the exam on %s (%s)\n",
		formatter.StyleGreen.Render("✔"),
		formatter.Bold(formatter.ShortID(plan.ID)),
		plan.TotalDays,
		plan.ExamDate.Format(domain.DateLayout),
		formatter.ExamCountdown(plan.ExamDate, app.now()))
	if len(plan.Days) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, formatter.FormatDay(&plan.Days[0]))
	}
	fmt.Fprintf(w, "\n%s\n", formatter.Dim("Tick tasks with `ripasso plan toggle "+formatter.ShortID(plan.ID)+" <n>`."))
	return nil
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatPlanList(plans, app.now()))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show the full plan calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatPlan(plan, app.now()))
			return nil
		},
	}
}

func newPlanTodayCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today <plan-id>",
		Short: "Show the tasks planned for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			_, day, err := findDay(ctx, app, id, date)
			if errors.Is(err, domain.ErrDayNotFound) {
				fmt.Fprintln(out(cmd), formatter.Dim("No study day planned for this date."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatDay(day))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "show another day (YYYY-MM-DD)")
	return cmd
}

func newPlanToggleCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "toggle <plan-id> <task-number>",
		Short: "Mark a task of today as done, or undo it",
		Long:  "Task numbers are the ones shown by `ripasso plan today`.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			_, day, err := findDay(ctx, app, id, date)
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > len(day.Tasks) {
				return fmt.Errorf("task number must be between 1 and %d", len(day.Tasks))
			}

			plan, err := app.Plans.ToggleTask(ctx, id, day.ID, day.Tasks[n-1].ID)
			if err != nil {
				return err
			}
			updated, err := plan.Day(day.ID)
			if err != nil {
				return err
			}

			w := out(cmd)
			fmt.Fprint(w, formatter.FormatDay(updated))
			fmt.Fprintf(w, "\nOverall %s\n", formatter.RenderProgress(plan.OverallProgress, 20))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "toggle a task of another day (YYYY-MM-DD)")
	return cmd
}

func newPlanCheckCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "check <plan-id>",
		Short: "Tick off today's tasks in an interactive checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("plan check needs an interactive terminal; use `ripasso plan toggle` instead")
			}
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, day, err := findDay(ctx, app, id, date)
			if err != nil {
				return err
			}
			return runChecklist(ctx, app, plan, day)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "check another day (YYYY-MM-DD)")
	return cmd
}

func newPlanStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <plan-id>",
		Short: "Show progress and pace against the exam date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status, err := app.Plans.Status(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), formatter.FormatStatus(status, app.now()))
			return nil
		},
	}
}

func newPlanExportCmd(app *App) *cobra.Command {
	var (
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "export <plan-id>",
		Short: "Write the plan as Markdown or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = app.config().Export.Directory
			}
			path, err := export.WritePlan(plan, dir, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Exported plan to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatMarkdown), "md or pdf")
	cmd.Flags().StringVarP(&dir, "out", "o", "", "output directory (default from config)")
	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <plan-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted plan %s\n", formatter.ShortID(id))
			return nil
		},
	}
}

// findDay returns the plan day for date, or for today when date is empty.
func findDay(ctx context.Context, app *App, planID, date string) (*domain.StudyPlan, *domain.DailyTask, error) {
	plan, err := app.Plans.GetByID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	if date == "" {
		day, err := app.Plans.Today(ctx, planID)
		if err != nil {
			return nil, nil, err
		}
		return plan, day, nil
	}
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
	}
	day, err := plan.DayOn(t)
	if err != nil {
		return nil, nil, err
	}
	return plan, day, nil
}
