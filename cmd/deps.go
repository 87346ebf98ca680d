package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai/gemini"
	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/metrics"
	"github.com/spigell/career-navigator/internal/secrets"
)

func newClient(config *Config, log *zap.Logger) (*careers.Client, error) {
	token, err := secrets.Load(secrets.ServiceToken(config.Service.TokenFile))
	if err != nil {
		return nil, fmt.Errorf("%w (set service.token-file or %s_TOKEN_FILE)", err, envPrefix)
	}

	client := careers.New(log, config.Service.URL, token)
	if config.Service.UserAgent != "" {
		client.UserAgent = config.Service.UserAgent
	}

	return client, nil
}

func newResumeParser(ctx context.Context, config *Config, client *careers.Client, log *zap.Logger) (careers.ResumeParser, error) {
	if config.Resume.Parser != parserGemini {
		return client, nil
	}

	cfg := config.Resume.Gemini
	apiKey, err := secrets.Load(secrets.GeminiKey(cfg.APIKey, cfg.APIKeyFile))
	if err != nil {
		return nil, fmt.Errorf("%w (set resume.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewResumeParser(generator, log.With(zap.String("model", generator.Model())), cfg.MaxLogLength), nil
}

// parseResume runs parser on path and counts the attempt.
func parseResume(ctx context.Context, parser careers.ResumeParser, name, path string, m *metrics.Metrics, log *zap.Logger) (*careers.ParsedResume, error) {
	resume, err := parser.ParseResume(ctx, path)
	m.ResumeParsed(name, err)
	if err != nil {
		return nil, err
	}

	log.Info("resume parsed", append(logger.ResumeFields(name, resume.CurrentRole), zap.Int("skills", len(resume.SkillNames())))...)
	return resume, nil
}

// serveMetrics exposes m on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, log *zap.Logger) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics endpoint stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
}
