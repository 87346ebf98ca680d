package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/metrics"
	"github.com/spigell/career-navigator/internal/present"
)

var parseCmd = &cobra.Command{
	Use:   "parse <resume.pdf|resume.docx>",
	Short: "Parse a resume and print what was extracted",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("output", "o", outputJSON, "output format: text or json")
}

func parse(cmd *cobra.Command, path string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	client, err := newClient(config, log)
	if err != nil {
		log.Fatal("loading service token", zap.Error(err))
	}

	parser, err := newResumeParser(ctx, config, client, log)
	if err != nil {
		log.Fatal("preparing resume parser", zap.Error(err))
	}

	resume, err := parseResume(ctx, parser, config.Resume.Parser, path, metrics.New(), log)
	if err != nil {
		log.Fatal("parsing resume", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if err := writeResume(os.Stdout, resume, output); err != nil {
		log.Fatal("writing output", zap.Error(err))
	}
}

func writeResume(w io.Writer, resume *careers.ParsedResume, output string) error {
	if output == outputText {
		present.NewRenderer(w, nil).Welcome(resume)
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resume)
}
