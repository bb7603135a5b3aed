// Package server exposes the verdict pipeline, the offline estimator, and
// the lender comparison catalog over HTTP. Transport glue only: all verdict
// semantics live in the pipeline and offline packages.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/credguard/verdict/comparison"
	"github.com/credguard/verdict/core/domain"
	"github.com/credguard/verdict/finance"
	"github.com/credguard/verdict/offline"
	"github.com/credguard/verdict/pipeline"
	"github.com/credguard/verdict/stages"
)

// VerdictRequest is the caller-facing payload for both verdict endpoints.
type VerdictRequest struct {
	Profile  domain.FinancialProfile `json:"profile"`
	Loan     domain.LoanRequest      `json:"loan"`
	Credit   domain.CreditInsight    `json:"creditInsight"`
	Language string                  `json:"language,omitempty"`
}

// LoanMetrics reports the deterministic loan math alongside a verdict.
type LoanMetrics struct {
	MonthlyInstallment  float64 `json:"monthlyInstallment"`
	TotalPayable        float64 `json:"totalPayable"`
	TotalInterest       float64 `json:"totalInterest"`
	DebtToIncomePercent float64 `json:"debtToIncomePercent"`
}

// VerdictResponse is the caller-facing result of a verdict computation.
type VerdictResponse struct {
	Verdict *domain.FinalVerdict `json:"verdict"`
	Metrics LoanMetrics          `json:"metrics"`
}

// Handler wires the verdict services into an http.Handler.
type Handler struct {
	pipeline    *pipeline.Pipeline
	comparisons *comparison.Service
	aux         *stages.Client
	limiter     *RateLimiter
}

// New builds the HTTP handler tree. aux serves the auxiliary collaborator
// proxies; limiter may be nil to disable rate limiting.
func New(p *pipeline.Pipeline, comparisons *comparison.Service, aux *stages.Client, limiter *RateLimiter) *Handler {
	return &Handler{
		pipeline:    p,
		comparisons: comparisons,
		aux:         aux,
		limiter:     limiter,
	}
}

// Routes returns the configured mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /verdict", rateLimitMiddleware(h.limiter, http.HandlerFunc(h.computeVerdict)))
	mux.Handle("POST /verdict/offline", rateLimitMiddleware(h.limiter, http.HandlerFunc(h.offlineVerdict)))
	mux.Handle("POST /lenders/compare", rateLimitMiddleware(h.limiter, http.HandlerFunc(h.compareLenders)))
	mux.Handle("POST /debts/consolidation", rateLimitMiddleware(h.limiter, http.HandlerFunc(h.consolidateDebts)))
	mux.Handle("POST /documents/scan", rateLimitMiddleware(h.limiter, http.HandlerFunc(h.scanDocument)))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func (h *Handler) computeVerdict(w http.ResponseWriter, req *http.Request) {
	var body VerdictRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	verdict, err := h.pipeline.Run(req.Context(), pipeline.Input{
		Profile:  body.Profile,
		Loan:     body.Loan,
		Credit:   body.Credit,
		Language: body.Language,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, VerdictResponse{
		Verdict: verdict,
		Metrics: loanMetrics(body.Profile, body.Loan),
	})
}

func (h *Handler) offlineVerdict(w http.ResponseWriter, req *http.Request) {
	var body VerdictRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	verdict, err := offline.Estimate(body.Profile, body.Loan)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, VerdictResponse{
		Verdict: verdict,
		Metrics: loanMetrics(body.Profile, body.Loan),
	})
}

func (h *Handler) compareLenders(w http.ResponseWriter, req *http.Request) {
	var loan domain.LoanRequest
	if err := json.NewDecoder(req.Body).Decode(&loan); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	offers, err := h.comparisons.Compare(req.Context(), loan)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"offers": offers})
}

func (h *Handler) consolidateDebts(w http.ResponseWriter, req *http.Request) {
	var body stages.ConsolidationRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.aux.Consolidation(req.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

const maxDocumentSize = 10 << 20 // 10 MiB

func (h *Handler) scanDocument(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxDocumentSize)

	file, header, err := req.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.aux.DocumentScan(req.Context(), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func loanMetrics(profile domain.FinancialProfile, loan domain.LoanRequest) LoanMetrics {
	emi := finance.MonthlyInstallment(loan.Amount, loan.InterestRate, loan.TenureMonths)
	total := emi * float64(loan.TenureMonths)

	m := LoanMetrics{
		MonthlyInstallment: finance.Round2(emi),
		TotalPayable:       finance.Round2(total),
		TotalInterest:      finance.Round2(total - loan.Amount),
	}
	if ratio, ok := finance.DebtToIncome(profile.MonthlyIncome, profile.MonthlyExpenses, profile.ExistingEMIs, emi); ok {
		m.DebtToIncomePercent = finance.Round2(ratio * 100)
	}
	return m
}

func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var stageErr *stages.StageError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
	case errors.As(err, &stageErr):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "verdict computation failed",
			"stage": stageErr.Stage,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, cfg *Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
