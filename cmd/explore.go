package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/links"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/metrics"
	"github.com/spigell/career-navigator/internal/orchestrator"
	"github.com/spigell/career-navigator/internal/present"
	"github.com/spigell/career-navigator/internal/ranking"
	"github.com/spigell/career-navigator/internal/session"
)

const (
	PromptStrategy   = "Change ranking strategy"
	PromptPath       = "Expand or collapse a path"
	PromptStep       = "Expand or collapse a step"
	PromptTarget     = "Change target role and fetch again"
	PromptRefetch    = "Fetch again"
	PromptReset      = "Start over"
	PromptDumpToFile = "Dump paths to file"
	PromptExit       = "Exit"
	PromptBack       = "back"
)

var errExit = errors.New("exit requested")

var exploreCmd = &cobra.Command{
	Use:   "explore <resume.pdf|resume.docx>",
	Short: "Upload a resume and explore recommended career paths",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		explore(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().StringP("target", "t", "", "target role; asked interactively when unset")
	exploreCmd.Flags().StringP("strategy", "s", "", "initial ranking strategy: "+strategyNames())
	exploreCmd.Flags().String("metrics-addr", "", "serve prometheus metrics on this address, e.g. 127.0.0.1:9090")

	viper.BindPFlag("metrics-addr", exploreCmd.Flags().Lookup("metrics-addr"))
}

// chooser is the interactive surface of the explore loop.
type chooser interface {
	Select(label string, items []string) (int, error)
	Input(label, initial string) (string, error)
}

type promptChooser struct{}

func (promptChooser) Select(label string, items []string) (int, error) {
	p := promptui.Select{Label: label, Items: items, Size: 10}
	i, _, err := p.Run()
	return i, err
}

func (promptChooser) Input(label, initial string) (string, error) {
	p := promptui.Prompt{Label: label, Default: initial, AllowEdit: true}
	return p.Run()
}

func explore(cmd *cobra.Command, path string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	strategy, err := strategyFlag(cmd, config)
	if err != nil {
		log.Fatal("parsing strategy", zap.Error(err))
	}

	log.Info("starting the career-navigator",
		zap.String("version", version),
		zap.String("service", config.Service.URL),
		zap.String(logger.FieldParser, config.Resume.Parser),
		zap.String(logger.FieldStrategy, string(strategy)),
	)

	m := metrics.New()
	serveMetrics(ctx, config.MetricsAddr, m, log)

	client, err := newClient(config, log)
	if err != nil {
		log.Fatal("loading service token", zap.Error(err))
	}

	parser, err := newResumeParser(ctx, config, client, log)
	if err != nil {
		log.Fatal("preparing resume parser", zap.Error(err))
	}

	resume, err := parseResume(ctx, parser, config.Resume.Parser, path, m, log)
	if err != nil {
		log.Fatal("parsing resume", zap.Error(err))
	}

	renderer := present.NewRenderer(os.Stdout, links.NewResolver(config.Links.SearchURL))
	renderer.Welcome(resume)

	orch := orchestrator.New(client, strategy, log, m)
	defer orch.Close()

	e := &explorer{
		orch:   orch,
		render: renderer,
		choose: promptChooser{},
		log:    log.With(zap.String(logger.FieldSession, orch.SessionID())),
		resume: resume,
	}

	target, _ := cmd.Flags().GetString("target")
	if !cmd.Flags().Changed("target") {
		if target, err = e.choose.Input("Target role (optional)", ""); err != nil {
			log.Info("exiting", zap.Error(err))
			return
		}
	}
	e.target = strings.TrimSpace(target)

	if err := e.submit(ctx); err != nil {
		log.Fatal("requesting career paths", zap.Error(err))
	}

	if err := e.run(ctx); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			log.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
		log.Fatal("exiting", zap.Error(err))
	}
}

type explorer struct {
	orch   *orchestrator.Orchestrator
	render *present.Renderer
	choose chooser
	log    *zap.Logger
	resume *careers.ParsedResume
	target string
}

// run shows the session and applies menu actions until the user leaves.
func (e *explorer) run(ctx context.Context) error {
	for {
		state := e.orch.Snapshot()
		e.render.Session(state)

		items := actions(state)
		i, err := e.choose.Select("What next?", items)
		if err != nil {
			return err
		}

		if err := e.handleAction(ctx, items[i]); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func actions(s session.State) []string {
	if len(s.Ranked) == 0 {
		if s.HasResult() {
			return []string{PromptTarget, PromptRefetch, PromptReset, PromptExit}
		}
		return []string{PromptTarget, PromptRefetch, PromptExit}
	}

	return []string{PromptStrategy, PromptPath, PromptStep, PromptTarget, PromptRefetch, PromptReset, PromptDumpToFile, PromptExit}
}

func (e *explorer) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptStrategy:
		return e.chooseStrategy()
	case PromptPath:
		return e.togglePath()
	case PromptStep:
		return e.toggleStep()
	case PromptTarget:
		target, err := e.choose.Input("Target role (empty for any)", e.target)
		if err != nil {
			return err
		}
		e.target = strings.TrimSpace(target)
		return e.submit(ctx)
	case PromptRefetch:
		return e.submit(ctx)
	case PromptReset:
		e.orch.Reset()
		e.log.Info("session reset")
		return nil
	case PromptDumpToFile:
		filename, err := careers.DumpToTmpFile(e.orch.Snapshot().Ranked)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		e.log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		e.log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// submit fetches paths for the resume. Fetch failures become part of the
// session state and are shown by the renderer.
func (e *explorer) submit(ctx context.Context) error {
	_, err := e.orch.Submit(ctx, e.resume.CurrentRole, e.resume.SkillNames(), e.target)

	var netErr *orchestrator.NetworkError
	switch {
	case err == nil, errors.As(err, &netErr):
		return nil
	case errors.Is(err, orchestrator.ErrBusy), errors.Is(err, orchestrator.ErrStale):
		e.log.Info("submission skipped", zap.Error(err))
		return nil
	default:
		return err
	}
}

func (e *explorer) chooseStrategy() error {
	strategies := ranking.Strategies()
	items := slice.Map(strategies, func(_ int, s ranking.Strategy) string {
		return fmt.Sprintf("%s - %s", s, ranking.Describe(s))
	})

	i, err := e.choose.Select("Rank paths by", append(items, PromptBack))
	if err != nil || i >= len(strategies) {
		return err
	}

	e.orch.SetStrategy(strategies[i])
	return nil
}

func (e *explorer) togglePath() error {
	i, ok, err := e.selectPath("Choose a path and press ENTER")
	if err != nil || !ok {
		return err
	}

	e.orch.TogglePath(i)
	return nil
}

// toggleStep works on the expanded path, asking for one first when none is.
func (e *explorer) toggleStep() error {
	state := e.orch.Snapshot()

	path, ok := state.Expansion.Path()
	if !ok {
		var err error
		path, ok, err = e.selectPath("Choose a path to open")
		if err != nil || !ok {
			return err
		}
		e.orch.TogglePath(path)
	}

	transitions := state.Ranked[path].Transitions
	if len(transitions) == 0 {
		e.log.Info("path has no steps", zap.Int("path", path+1))
		return nil
	}

	items := slice.Map(transitions, func(_ int, t careers.Transition) string {
		return present.StepTitle(t)
	})

	step, err := e.choose.Select("Choose a step and press ENTER", append(items, PromptBack))
	if err != nil || step >= len(transitions) {
		return err
	}

	e.orch.ToggleStep(path, step)
	return nil
}

func (e *explorer) selectPath(label string) (int, bool, error) {
	ranked := e.orch.Snapshot().Ranked
	items := slice.Map(ranked, func(i int, p careers.CareerPath) string {
		return present.PathTitle(i, p)
	})

	i, err := e.choose.Select(label, append(items, PromptBack))
	if err != nil {
		return 0, false, err
	}

	return i, i < len(ranked), nil
}

// strategyFlag prefers the --strategy flag over the configured strategy.
func strategyFlag(cmd *cobra.Command, config *Config) (ranking.Strategy, error) {
	if flag := cmd.Flags().Lookup("strategy"); flag != nil && flag.Changed {
		return ranking.ParseStrategy(flag.Value.String())
	}
	return config.Strategy(), nil
}

func strategyNames() string {
	names := slice.Map(ranking.Strategies(), func(_ int, s ranking.Strategy) string {
		return string(s)
	})
	return strings.Join(names, ", ")
}
