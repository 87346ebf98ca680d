package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/links"
	"github.com/spigell/career-navigator/internal/metrics"
	"github.com/spigell/career-navigator/internal/orchestrator"
	"github.com/spigell/career-navigator/internal/present"
	"github.com/spigell/career-navigator/internal/ranking"
	"github.com/spigell/career-navigator/internal/session"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [resume.pdf|resume.docx]",
	Short: "Print ranked career paths without the interactive session",
	Long: "Print ranked career paths for a resume, or for --role and --skills when no resume is given.\n" +
		"--role and --skills override what the resume says.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		recommend(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("target", "t", "", "target role")
	recommendCmd.Flags().StringP("strategy", "s", "", "ranking strategy: "+strategyNames())
	recommendCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	recommendCmd.Flags().String("role", "", "current role")
	recommendCmd.Flags().StringSlice("skills", nil, "comma separated skills")
}

type recommendation struct {
	Strategy        ranking.Strategy     `json:"strategy"`
	Paths           []careers.CareerPath `json:"paths"`
	RecommendedPath *careers.CareerPath  `json:"recommended_path,omitempty"`
	SkillGaps       []careers.SkillGap   `json:"skill_gaps,omitempty"`
}

func recommend(cmd *cobra.Command, args []string) {
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

	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		log.Fatal("invalid output format", zap.String("output", output))
	}

	m := metrics.New()

	client, err := newClient(config, log)
	if err != nil {
		log.Fatal("loading service token", zap.Error(err))
	}

	resume := &careers.ParsedResume{}
	if len(args) == 1 {
		parser, err := newResumeParser(ctx, config, client, log)
		if err != nil {
			log.Fatal("preparing resume parser", zap.Error(err))
		}
		if resume, err = parseResume(ctx, parser, config.Resume.Parser, args[0], m, log); err != nil {
			log.Fatal("parsing resume", zap.Error(err))
		}
	}

	role, skills := resume.CurrentRole, resume.SkillNames()
	if cmd.Flags().Changed("role") {
		role, _ = cmd.Flags().GetString("role")
	}
	if cmd.Flags().Changed("skills") {
		skills, _ = cmd.Flags().GetStringSlice("skills")
	}
	if role == "" {
		log.Fatal("current role is unknown", zap.String("hint", "pass a resume or --role"))
	}

	target, _ := cmd.Flags().GetString("target")

	orch := orchestrator.New(client, strategy, log, m)
	defer orch.Close()

	if _, err := orch.Submit(ctx, role, skills, target); err != nil {
		var netErr *orchestrator.NetworkError
		if errors.As(err, &netErr) {
			log.Fatal(netErr.Error(), zap.NamedError("cause", netErr.Err))
		}
		log.Fatal("requesting career paths", zap.Error(err))
	}

	resolver := links.NewResolver(config.Links.SearchURL)
	if err := writeRecommendation(os.Stdout, orch.Snapshot(), output, resolver); err != nil {
		log.Fatal("writing output", zap.Error(err))
	}
}

func writeRecommendation(w io.Writer, state session.State, output string, resolver *links.Resolver) error {
	if output != outputJSON {
		present.NewRenderer(w, resolver).Session(state)
		return nil
	}

	result := recommendation{Strategy: state.Strategy, Paths: state.Ranked}
	if state.Response != nil {
		result.RecommendedPath = state.Response.RecommendedPath
		result.SkillGaps = state.Response.SkillGaps
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode recommendation: %w", err)
	}

	return nil
}
