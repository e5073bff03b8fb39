package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"reactivation/internal/api"
	"reactivation/internal/domain"
	"reactivation/internal/services/campaign"
	"reactivation/internal/services/experiments"
	"reactivation/internal/services/ledger"
	"reactivation/internal/services/replies"
	"reactivation/internal/services/reports"
	"reactivation/internal/services/scoring"
	"reactivation/internal/services/selector"
)

// Campaign is the orchestrator surface behind the approval gate.
type Campaign interface {
	RunDaily(ctx context.Context) (campaign.RunResult, error)
	LatestBatch(ctx context.Context) (domain.Batch, error)
	Batch(ctx context.Context, id string) (domain.Batch, error)
	Approve(ctx context.Context, batchID string, approvals []campaign.Approval) (domain.DispatchResult, error)
	PreviewSequence(ctx context.Context, batchID, phone string) (domain.SequencePreview, error)
	RunDueStages(ctx context.Context) (domain.DispatchResult, error)
	CancelSequence(ctx context.Context, phone, reason string) error
	ListSequences(ctx context.Context, stage domain.Stage) ([]domain.FollowupSequence, error)
	ScorePopulation(ctx context.Context) (scoring.Summary, error)
}

type Scheduler interface {
	Start(ctx context.Context)
	Stop()
	Status() campaign.SchedulerStatus
}

type ReplyIngester interface {
	Ingest(ctx context.Context, in replies.Inbound) (domain.InboundReply, error)
}

type BlacklistManager interface {
	AddToBlacklist(ctx context.Context, phone, reason string) (domain.BlacklistEntry, error)
	RemoveFromBlacklist(ctx context.Context, phone string) (bool, error)
	Blacklist(ctx context.Context) ([]domain.BlacklistEntry, error)
}

type Ledger interface {
	RecordConversion(ctx context.Context, in ledger.ConversionInput) (domain.Conversion, error)
	PendingLeads(ctx context.Context) ([]domain.HotLead, error)
	MarkContacted(ctx context.Context, phone, notes string) (domain.HotLead, error)
	History(ctx context.Context, phone string) ([]domain.OutreachRecord, error)
}

type Experiments interface {
	CreateExperiment(ctx context.Context, spec experiments.ExperimentSpec) (domain.Experiment, error)
	List(ctx context.Context) ([]domain.Experiment, error)
	Get(ctx context.Context, id string) (domain.Experiment, error)
	Report(ctx context.Context, id string) (experiments.Report, error)
	Finalize(ctx context.Context, id string) (experiments.Result, error)
}

type Reports interface {
	RecentPerformance(ctx context.Context, days int) (reports.Performance, error)
	OutreachHistory(ctx context.Context, days int) (reports.History, error)
	ReplyStats(ctx context.Context, days int) (reports.ReplyStats, error)
	ConversionStats(ctx context.Context, days int) (reports.ConversionStats, error)
	Inactivity(ctx context.Context) (reports.InactivityReport, error)
	InactivitySegment(ctx context.Context, name string) (reports.SegmentGroup, error)
	RecentExits(ctx context.Context, days int) (reports.RecentExits, error)
	ChurnTrend(ctx context.Context) (reports.ChurnTrend, error)
}

var (
	_ Campaign         = (*campaign.Orchestrator)(nil)
	_ Scheduler        = (*campaign.Scheduler)(nil)
	_ ReplyIngester    = (*replies.Service)(nil)
	_ BlacklistManager = (*selector.Selector)(nil)
	_ Ledger           = (*ledger.Service)(nil)
	_ Experiments      = (*experiments.Tracker)(nil)
	_ Reports          = (*reports.Service)(nil)

	_ api.StrictServerInterface = (*Server)(nil)
)

type Deps struct {
	Campaign    Campaign
	Scheduler   Scheduler
	Replies     ReplyIngester
	Blacklist   BlacklistManager
	Ledger      Ledger
	Experiments Experiments
	Reports     Reports
	Log         *zap.Logger
}

// Server implements the generated StrictServerInterface: the approval
// gate, the inbound webhook and the reports. Dispatches and scheduled runs are bound to the server context, not to the
// request that triggered them.
type Server struct {
	deps Deps
	base context.Context
	log  *zap.Logger
}

func New(base context.Context, deps Deps) *Server {
	if base == nil {
		base = context.Background()
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{deps: deps, base: base, log: log}
}

// Routes returns a chi.Router mounting the generated handlers behind the
// request id, recovery, logging and body-limit middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(limitBody)

	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.requestError,
		ResponseErrorHandlerFunc: s.responseError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.requestError,
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidPhone):
		return http.StatusBadRequest, "invalid_phone"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrBatchNotPending):
		return http.StatusConflict, "batch_not_pending"
	case errors.Is(err, domain.ErrRunInProgress):
		return http.StatusConflict, "run_in_progress"
	case errors.Is(err, domain.ErrSequenceActive):
		return http.StatusConflict, "sequence_active"
	case errors.Is(err, domain.ErrExperimentFinalized):
		return http.StatusConflict, "experiment_finalized"
	case errors.Is(err, domain.ErrExperimentInactive):
		return http.StatusConflict, "experiment_inactive"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "cancelled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// requestError answers malformed parameters and bodies.
func (s *Server) requestError(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, api.Error{Error: api.ErrorDetail{Kind: "invalid_input", Message: err.Error()}})
}

func (s *Server) responseError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, api.Error{Error: api.ErrorDetail{Kind: kind, Message: err.Error()}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
