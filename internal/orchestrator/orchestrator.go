// Package orchestrator owns one exploration session: it sends recommendation
// requests, allows at most one of them in flight, and applies every event to
// the session state through the session reducer.
package orchestrator

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/metrics"
	"github.com/spigell/career-navigator/internal/ranking"
	"github.com/spigell/career-navigator/internal/session"
)

// FetchFailedMessage is the only message shown to users for failed fetches.
const FetchFailedMessage = "failed to fetch recommendations"

var (
	// ErrBusy is returned by Submit while another submission is pending. The state is not touched.
	ErrBusy = errors.New("a submission is already in flight")
	// ErrStale is returned when the session was reset or closed while the request was running.
	ErrStale = errors.New("submission was superseded")
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("orchestrator is closed")
)

// NetworkError wraps any failure to obtain recommendations.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return FetchFailedMessage }

func (e *NetworkError) Unwrap() error { return e.Err }

// Recommender is the remote recommendation service.
type Recommender interface {
	Recommend(ctx context.Context, req *careers.CareerPathRequest) (*careers.CareerPathResponse, error)
}

type Orchestrator struct {
	recommender Recommender
	logger      *zap.Logger
	metrics     *metrics.Metrics
	gate        *semaphore.Weighted
	strategy    ranking.Strategy
	sessionID   string

	mu     sync.Mutex
	state  session.State
	cancel context.CancelFunc
	closed bool
}

// New returns an orchestrator ranking results with strategy until told otherwise.
// A nil metrics value disables instrumentation.
func New(recommender Recommender, strategy ranking.Strategy, log *zap.Logger, m *metrics.Metrics) *Orchestrator {
	id := uuid.NewString()

	return &Orchestrator{
		recommender: recommender,
		logger:      logger.WithFields(log, zap.String(logger.FieldSession, id)),
		metrics:     m,
		gate:        semaphore.NewWeighted(1),
		strategy:    strategy,
		sessionID:   id,
		state:       session.New(strategy),
	}
}

// BuildRequest assembles the request body. A blank target role becomes nil,
// never an empty string, and skills are never nil.
func BuildRequest(currentRole string, skillNames []string, targetRoleInput string) *careers.CareerPathRequest {
	skills := slices.Clone(skillNames)
	if skills == nil {
		skills = []string{}
	}

	req := &careers.CareerPathRequest{
		CurrentRole: currentRole,
		UserSkills:  skills,
	}

	if target := strings.TrimSpace(targetRoleInput); target != "" {
		req.TargetRole = &target
	}

	return req
}

// Submit requests recommendations and applies the outcome to the session.
// Failures leave the previous result set in place and are returned as *NetworkError.
func (o *Orchestrator) Submit(ctx context.Context, currentRole string, skillNames []string, targetRole string) (*careers.CareerPathResponse, error) {
	if !o.gate.TryAcquire(1) {
		o.count(metrics.OutcomeBusy)
		o.logger.Debug("submission ignored", zap.String("reason", "another submission is in flight"))
		return nil, ErrBusy
	}
	defer o.gate.Release(1)

	requestID := uuid.NewString()
	ctx, cancel := context.WithCancel(careers.WithRequestID(ctx, requestID))
	defer cancel()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, ErrClosed
	}
	o.state = session.Reduce(o.state, session.SubmitStarted{})
	generation := o.state.Generation
	o.cancel = cancel
	o.mu.Unlock()

	req := BuildRequest(currentRole, skillNames, targetRole)
	log := o.logger.With(zap.String(logger.FieldRequest, requestID))
	log.Info("requesting career paths",
		zap.String("current_role", req.CurrentRole),
		zap.Int("skills", len(req.UserSkills)),
		zap.Bool("target_role_set", req.TargetRole != nil),
	)

	start := time.Now()
	resp, err := o.recommender.Recommend(ctx, req)
	took := time.Since(start)
	if o.metrics != nil {
		o.metrics.SubmitDuration.Observe(took.Seconds())
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancel = nil
	stale := generation != o.state.Generation

	if err != nil {
		netErr := &NetworkError{Err: err}
		o.state = session.Reduce(o.state, session.SubmitFailed{Generation: generation, Err: netErr})
		if stale {
			o.count(metrics.OutcomeStale)
			log.Debug("dropping stale failure", zap.Error(err))
			return nil, ErrStale
		}
		o.count(metrics.OutcomeFailure)
		log.Warn("fetching career paths failed", zap.Error(err), zap.Duration("took", took))
		return nil, netErr
	}

	o.state = session.Reduce(o.state, session.SubmitSucceeded{Generation: generation, Response: resp})
	if stale {
		o.count(metrics.OutcomeStale)
		log.Debug("dropping stale response", zap.Int(logger.FieldPaths, resp.Len()))
		return nil, ErrStale
	}

	o.count(metrics.OutcomeSuccess)
	if o.metrics != nil {
		o.metrics.PathsReceived.Observe(float64(resp.Len()))
	}
	log.Info("received career paths", zap.Int(logger.FieldPaths, resp.Len()), zap.Duration("took", took))

	if resp != nil {
		for i, p := range resp.Paths {
			if problems := p.Inconsistencies(); len(problems) > 0 {
				log.Debug("path roles and transitions disagree", zap.Int("path", i), zap.Strings("problems", problems))
			}
		}
	}

	return o.state.Response, nil
}

// SetStrategy re-ranks the current result set without fetching again.
func (o *Orchestrator) SetStrategy(s ranking.Strategy) {
	o.dispatch(session.SetStrategy{Strategy: s})
	if o.metrics != nil {
		o.metrics.StrategyChanges.WithLabelValues(string(s)).Inc()
	}
	o.logger.Debug("strategy changed", zap.String(logger.FieldStrategy, string(s)))
}

// TogglePath expands path i of the ranked list, or collapses it if it is expanded.
func (o *Orchestrator) TogglePath(i int) {
	o.dispatch(session.TogglePath{Index: i})
}

// ToggleStep flips the disclosure of one step of one ranked path.
func (o *Orchestrator) ToggleStep(path, step int) {
	o.dispatch(session.ToggleStep{Key: session.StepKey{Path: path, Step: step}})
}

// Reset discards the result set and abandons a pending request, if any.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = session.Reduce(o.state, session.Reset{Strategy: o.strategy})
	if o.cancel != nil {
		o.cancel()
	}
}

// Close abandons a pending request. Later submissions fail with ErrClosed.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	o.state = session.Reduce(o.state, session.Reset{Strategy: o.state.Strategy})
	if o.cancel != nil {
		o.cancel()
	}
}

// Busy reports whether a submission is pending.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Busy
}

// Snapshot returns the current session state.
func (o *Orchestrator) Snapshot() session.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

func (o *Orchestrator) dispatch(a session.Action) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = session.Reduce(o.state, a)
}

func (o *Orchestrator) count(outcome string) {
	if o.metrics == nil {
		return
	}
	o.metrics.Submissions.WithLabelValues(outcome).Inc()
}
