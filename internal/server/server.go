package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/loan-analytics/internal/config"
	"github.com/iwvelando/loan-analytics/internal/report"
	"github.com/iwvelando/loan-analytics/pkg/affordability"
	"github.com/iwvelando/loan-analytics/pkg/comparison"
	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/iwvelando/loan-analytics/pkg/loans"
	"github.com/iwvelando/loan-analytics/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures the HTTP handler.
type Options struct {
	MaxRequestSize int64
	Version        string
	// Cache stores schedule and compare responses. Nil disables caching.
	Cache Cache
}

type handler struct {
	logger         *zap.Logger
	analyzer       *report.Analyzer
	maxRequestSize int64
	version        string
	cache          Cache
	now            func() time.Time
}

// NewHandler constructs the HTTP handler that serves the loan API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	return newHandler(logger, opts).routes()
}

func newHandler(logger *zap.Logger, opts Options) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRequestSize := opts.MaxRequestSize
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	return &handler{
		logger:         logger,
		analyzer:       report.NewAnalyzer(logger),
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		cache:          opts.Cache,
		now:            time.Now,
	}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()

	// Single loan schedule, yearly summary and prepayment impact
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Side-by-side comparison of several loans
	mux.HandleFunc("/api/compare", h.handleCompare)

	// Full report for a YAML configuration
	mux.HandleFunc("/api/report", h.handleReport)

	// Config serialization endpoint for downloads
	mux.HandleFunc("/api/config/export", h.handleConfigExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// LoanRequest describes one loan in an API request.
type LoanRequest struct {
	Name            string               `json:"name"`
	Principal       float64              `json:"principal"`
	InterestRate    float64              `json:"interestRate"`
	TermYears       int                  `json:"termYears"`
	PaymentsPerYear int                  `json:"paymentsPerYear,omitempty"`
	StartDate       string               `json:"startDate,omitempty"`
	Prepayment      loans.PrepaymentPlan `json:"prepayment"`
	// Borrower adds a debt-to-income readout to /api/schedule responses.
	Borrower *affordability.Borrower `json:"borrower,omitempty"`
}

func (l LoanRequest) terms() (loans.LoanTerms, error) {
	terms, err := loans.NewLoanTerms(l.Principal, l.InterestRate, l.TermYears, l.PaymentsPerYear)
	if err != nil {
		return loans.LoanTerms{}, fmt.Errorf("loan '%s': %w", l.Name, err)
	}
	return terms, nil
}

// CompareRequest lists the loans to compare.
type CompareRequest struct {
	Loans []LoanRequest `json:"loans"`
}

type compareResponse struct {
	Results []comparison.Result `json:"results"`
	Ranked  []comparison.Result `json:"ranked"`
	Best    comparison.Result   `json:"best"`
}

type reportResponse struct {
	Report   report.Report `json:"report"`
	CSV      string        `json:"csv"`
	Warnings []string      `json:"warnings,omitempty"`
	Duration string        `json:"duration"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req LoanRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.Name == "" {
		req.Name = "Loan 1"
	}
	if req.StartDate != "" {
		if _, err := time.Parse(constants.DateTimeLayout, req.StartDate); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest,
				fmt.Sprintf("invalid start date %q, expected YYYY-MM", req.StartDate), op)
			return
		}
	}

	h.cached(r.Context(), w, "schedule", req, op, func() (interface{}, error) {
		terms, err := req.terms()
		if err != nil {
			return nil, err
		}
		loanReport, err := h.analyzer.AnalyzeLoan(req.Name, terms, req.Prepayment, req.StartDate)
		if err != nil {
			return nil, err
		}
		if req.Borrower != nil {
			if err := loanReport.AssessAffordability(*req.Borrower); err != nil {
				return nil, err
			}
		}
		return loanReport, nil
	})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req CompareRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	for i := range req.Loans {
		if req.Loans[i].Name == "" {
			req.Loans[i].Name = fmt.Sprintf("Loan %d", i+1)
		}
	}

	h.cached(r.Context(), w, "compare", req, op, func() (interface{}, error) {
		candidates := make([]comparison.Candidate, 0, len(req.Loans))
		for _, loan := range req.Loans {
			terms, err := loan.terms()
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, comparison.Candidate{Name: loan.Name, Terms: terms})
		}

		results, best, err := h.analyzer.Compare(r.Context(), candidates)
		if err != nil {
			return nil, err
		}
		return compareResponse{
			Results: results,
			Ranked:  comparison.Rank(results),
			Best:    best,
		}, nil
	})
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := h.now()
	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	cfg.ApplyDefaults(start)
	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	rep, err := report.GetReport(r.Context(), h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}

	csvText, err := output.CsvString(rep, start)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	elapsed := h.now().Sub(start)
	h.logger.Info("report computed",
		zap.String("op", op),
		zap.Int("loans", len(rep.Loans)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, reportResponse{
		Report:   rep,
		CSV:      csvText,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// cached serves the response for req from the cache, or computes it with
// compute and stores the encoded result. Cache failures are logged and
// otherwise ignored.
func (h *handler) cached(ctx context.Context, w http.ResponseWriter, endpoint string, req interface{}, op string, compute func() (interface{}, error)) {
	var key string
	if h.cache != nil {
		canonical, err := json.Marshal(req)
		if err == nil {
			key = CacheKey(endpoint, canonical)
			if body, ok, err := h.cache.Get(ctx, key); err != nil {
				h.logger.Warn("cache lookup failed", zap.String("op", op), zap.Error(err))
			} else if ok {
				w.Header().Set("X-Cache", "HIT")
				h.writeRaw(w, http.StatusOK, body)
				return
			}
		}
	}

	result, err := compute()
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err), op)
		return
	}

	if key != "" {
		if err := h.cache.Set(ctx, key, body); err != nil {
			h.logger.Warn("cache store failed", zap.String("op", op), zap.Error(err))
		}
		w.Header().Set("X-Cache", "MISS")
	}
	h.writeRaw(w, http.StatusOK, body)
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return nil, false
	}
	return body, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	body, ok := h.readBody(w, r, op)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func statusFor(err error) int {
	if errors.Is(err, loans.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "startDate", "compare"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
