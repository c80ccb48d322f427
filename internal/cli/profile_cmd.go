package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ripasso/internal/cli/formatter"
	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/importer"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage examination profiles",
	}

	cmd.AddCommand(
		newProfileSetCmd(app),
		newProfileListCmd(app),
		newProfileShowCmd(app),
		newProfileRemoveCmd(app),
	)

	return cmd
}

type profileFlags struct {
	oral, written, practical  float64
	multipleChoice, open      bool
	exercises, caseStudy      bool
	questions, duration, diff int
	preferred                 []string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.oral, "oral", 0, "weight of the oral part")
	fl.Float64Var(&f.written, "written", 0, "weight of the written part")
	fl.Float64Var(&f.practical, "practical", 0, "weight of the practical part")
	fl.BoolVar(&f.multipleChoice, "multiple-choice", false, "asks multiple-choice questions")
	fl.BoolVar(&f.open, "open", false, "asks open questions")
	fl.BoolVar(&f.exercises, "exercises", false, "sets exercises")
	fl.BoolVar(&f.caseStudy, "case-study", false, "sets case studies")
	fl.IntVar(&f.questions, "questions", 0, "average number of questions")
	fl.IntVar(&f.duration, "duration", 0, "exam duration in minutes")
	fl.IntVar(&f.diff, "difficulty", 0, "difficulty from 1 to 5")
	fl.StringSliceVar(&f.preferred, "prefer", nil, "preferred topic (repeatable)")
}

// apply overlays only the flags given on the command line.
func (f *profileFlags) apply(cmd *cobra.Command, p *domain.ExaminationProfile) {
	changed := cmd.Flags().Changed
	if changed("oral") {
		p.OralWeight = f.oral
	}
	if changed("written") {
		p.WrittenWeight = f.written
	}
	if changed("practical") {
		p.PracticalWeight = f.practical
	}
	if changed("multiple-choice") {
		p.MultipleChoice = f.multipleChoice
	}
	if changed("open") {
		p.OpenQuestions = f.open
	}
	if changed("exercises") {
		p.Exercises = f.exercises
	}
	if changed("case-study") {
		p.CaseStudy = f.caseStudy
	}
	if changed("questions") {
		p.AverageQuestionCount = f.questions
	}
	if changed("duration") {
		p.ExamDurationMin = f.duration
	}
	if changed("difficulty") {
		p.DifficultyLevel = f.diff
	}
	if changed("prefer") {
		p.PreferredTopics = f.preferred
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		file        string
		interactive bool
		flags       profileFlags
	)

	cmd := &cobra.Command{
		Use:   "set [name]",
		Short: "Create or update an examination profile",
		Long: `Starts from the profile file when --file is given, otherwise from the
stored profile of that name or the default profile, then applies flags.`,
		Example: `  ripasso profile set rossi --oral 100 --written 0 --questions 6
  ripasso profile set --file rossi.yaml
  ripasso profile set rossi --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := ""
			if len(args) == 1 {
				name = strings.TrimSpace(args[0])
			}

			var p domain.ExaminationProfile
			switch {
			case file != "":
				f, err := importer.LoadProfileFile(file)
				if err != nil {
					return err
				}
				if name != "" {
					f.Name = name
				}
				if err := importer.AsError(importer.ValidateProfileFile(f)); err != nil {
					return err
				}
				p = importer.ConvertProfile(f)
			case name == "":
				return fmt.Errorf("profile name is required without --file")
			default:
				existing, err := app.Profiles.Get(ctx, name)
				switch {
				case err == nil:
					p = *existing
				case errors.Is(err, repository.ErrNotFound):
					p = domain.DefaultExaminationProfile()
					p.Name = name
				default:
					return err
				}
			}
			flags.apply(cmd, &p)

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				values := newProfileWizardValues(p)
				if err := newProfileWizardForm(values).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(out(cmd), formatter.Dim("Cancelled."))
						return nil
					}
					return err
				}
				p = values.toProfile()
			}

			if err := app.Profiles.Save(ctx, &p); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s Saved profile %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(p.Name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON profile file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "edit the profile in a form")
	flags.register(cmd)
	return cmd
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Profiles.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatProfileList(profiles))
			return nil
		},
	}
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a saved profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Profiles.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted profile %s\n", strings.TrimSpace(args[0]))
			return nil
		},
	}
}
