package careers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL        = "http://localhost:8000"
	userAgent     = "spigell/career-navigator"
	parseResume   = "/api/v1/resume/parse"
	careerPaths   = "/api/v1/career-paths"
	clientTimeout = 60 * time.Second
)

// Client talks to the resume ingestion and career recommendation endpoints.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client for the service at baseURL. An empty baseURL falls back to the local default.
func New(logger *zap.Logger, baseURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = apiURL
	}

	return &Client{
		token:  strings.TrimSpace(token),
		APIURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: clientTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
