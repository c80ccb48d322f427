package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/ripasso/internal/cli/formatter"
	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/export"
	"github.com/alexanderramin/ripasso/internal/importer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Generate and score mock exams",
	}

	cmd.AddCommand(
		newExamGenerateCmd(app),
		newExamListCmd(app),
		newExamShowCmd(app),
		newExamScoreCmd(app),
		newExamExportCmd(app),
		newExamRemoveCmd(app),
	)

	return cmd
}

func newExamGenerateCmd(app *App) *cobra.Command {
	var (
		profileName string
		profileFile string
		topics      []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a mock exam for an examination profile",
		Example: `  ripasso exam generate --profile rossi --topic Contratti --topic Obbligazioni
  ripasso exam generate --profile-file rossi.yaml -t Contratti`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if profileName != "" && profileFile != "" {
				return fmt.Errorf("--profile and --profile-file are mutually exclusive")
			}

			var (
				sim *domain.ExamSimulation
				err error
			)
			switch {
			case profileName != "":
				sim, err = app.Simulations.GenerateForProfile(ctx, profileName, topics)
			case profileFile != "":
				f, loadErr := importer.LoadProfileFile(profileFile)
				if loadErr != nil {
					return loadErr
				}
				if verr := importer.AsError(importer.ValidateProfileFile(f)); verr != nil {
					return verr
				}
				sim, err = app.Simulations.Generate(ctx, importer.ConvertProfile(f), topics)
			default:
				sim, err = app.Simulations.Generate(ctx, domain.DefaultExaminationProfile(), topics)
			}
			if err != nil {
				return fmt.Errorf("generating simulation: %w", err)
			}

			w := out(cmd)
			fmt.Fprint(w, formatter.FormatSimulation(sim, false))
			fmt.Fprintf(w, "\n%s\n", formatter.Dim("Score it with `ripasso exam score "+formatter.ShortID(sim.ID)+" --answer 1=...`."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "saved examination profile")
	cmd.Flags().StringVar(&profileFile, "profile-file", "", "YAML or JSON profile file")
	cmd.Flags().StringSliceVarP(&topics, "topic", "t", nil, "topic to examine (repeatable)")

	return cmd
}

func newExamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored simulations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sims, err := app.Simulations.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatSimulationList(sims))
			return nil
		},
	}
}

func newExamShowCmd(app *App) *cobra.Command {
	var answers bool

	cmd := &cobra.Command{
		Use:   "show <simulation-id>",
		Short: "Print a simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSimulationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sim, err := app.Simulations.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatSimulation(sim, answers))
			return nil
		},
	}
	cmd.Flags().BoolVar(&answers, "answers", false, "include the answer key")
	return cmd
}

func newExamScoreCmd(app *App) *cobra.Command {
	var (
		answerFlags []string
		answersFile string
	)

	cmd := &cobra.Command{
		Use:   "score <simulation-id>",
		Short: "Score answers to the closed questions of a simulation",
		Long: `Answers are keyed by question number (as printed by exam show) or by
question ID. Open questions are reported as pending.`,
		Example: `  ripasso exam score 3f2a --answer 1=Vero --answer 2=Contratti
  ripasso exam score 3f2a --answers-file answers.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSimulationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sim, err := app.Simulations.GetByID(ctx, id)
			if err != nil {
				return err
			}

			raw := map[string]string{}
			if answersFile != "" {
				if raw, err = loadAnswersFile(answersFile); err != nil {
					return err
				}
			}
			for _, a := range answerFlags {
				k, v, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("invalid --answer %q: use NUMBER=ANSWER", a)
				}
				raw[strings.TrimSpace(k)] = v
			}

			answers, err := answersByQuestionID(sim, raw)
			if err != nil {
				return err
			}
			report, err := app.Simulations.Score(ctx, id, answers)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), formatter.FormatScore(sim, report))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&answerFlags, "answer", "a", nil, "answer as NUMBER=ANSWER (repeatable)")
	cmd.Flags().StringVar(&answersFile, "answers-file", "", "YAML or JSON map of question to answer")
	return cmd
}

func newExamExportCmd(app *App) *cobra.Command {
	var (
		format  string
		dir     string
		answers bool
	)

	cmd := &cobra.Command{
		Use:   "export <simulation-id>",
		Short: "Write a simulation as Markdown or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			id, err := resolveSimulationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sim, err := app.Simulations.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = app.config().Export.Directory
			}
			path, err := export.WriteSimulation(sim, dir, f, answers)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Exported simulation to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatMarkdown), "md or pdf")
	cmd.Flags().StringVarP(&dir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&answers, "answers", false, "append the answer key")
	return cmd
}

func newExamRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <simulation-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a simulation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSimulationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Simulations.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted simulation %s\n", formatter.ShortID(id))
			return nil
		},
	}
}

func loadAnswersFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}
	answers := map[string]string{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return answers, nil
}

// answersByQuestionID rewrites question-number keys into question IDs.
func answersByQuestionID(sim *domain.ExamSimulation, raw map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if sim.Question(k) != nil {
			out[k] = v
			continue
		}
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 || n > len(sim.Questions) {
			return nil, fmt.Errorf("unknown question %q: use a number between 1 and %d", k, len(sim.Questions))
		}
		out[sim.Questions[n-1].ID] = v
	}
	return out, nil
}
