// Package pipeline orchestrates the verdict computation: six remote analysis
// stages executed per their data-dependency graph, followed by a pure mapping
// into the public FinalVerdict shape.
//
// Stage dependency graph:
//
//	Stability ──┐
//	            ├──> Necessity ──┐
//	            │                ├──> Synthesis ──> Negotiation (optional)
//	Burden  ────┴────────────────┤
//	Market  ─────────────────────┘
//
// Stability, Burden, and Market are independent and start together; Necessity
// waits only on Stability. A required stage failure aborts the run before
// Synthesis starts. Negotiation runs in its own failure domain: its failure
// only omits the script from the result.
//
//	p, err := pipeline.New(&cfg)
//	v, err := p.Run(ctx, pipeline.Input{Profile: profile, Loan: loan, Credit: insight})
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/credguard/verdict/core/domain"
	"github.com/credguard/verdict/observability"
	"github.com/credguard/verdict/stages"
)

// defaultLenderName replaces an empty lender on burden/market requests.
const defaultLenderName = "Generic Lender"

// negotiationLenderName replaces an empty lender in the negotiation request,
// where the script addresses the counterparty directly.
const negotiationLenderName = "the Bank"

// stageSpec declares a stage's identity and failure policy. The scheduler
// evaluates the policy uniformly instead of re-implementing recovery per
// call site.
type stageSpec struct {
	name     string
	optional bool
}

var (
	specStability   = stageSpec{name: "stability"}
	specBurden      = stageSpec{name: "burden"}
	specNecessity   = stageSpec{name: "necessity"}
	specMarket      = stageSpec{name: "market"}
	specSynthesis   = stageSpec{name: "synthesis"}
	specNegotiation = stageSpec{name: "negotiation", optional: true}
)

// Input is the immutable per-request payload for one verdict computation.
// Language falls back to the pipeline's configured default when empty.
type Input struct {
	Profile  domain.FinancialProfile
	Loan     domain.LoanRequest
	Credit   domain.CreditInsight
	Language string
}

// Validate rejects malformed input before any stage call is issued.
func (in Input) Validate() error {
	if err := in.Profile.Validate(); err != nil {
		return err
	}
	return in.Loan.Validate()
}

// Option configures a Pipeline after config-driven initialization.
type Option func(*Pipeline)

// WithService overrides the config-created stage service.
func WithService(s stages.Service) Option {
	return func(p *Pipeline) { p.stages = s }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithStageTimeout overrides the per-stage timeout. Zero disables it.
func WithStageTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// Pipeline schedules the verdict stages. Safe for concurrent use; runs share
// no mutable state.
type Pipeline struct {
	stages   stages.Service
	observer observability.Observer
	timeout  time.Duration
	language string
}

// New creates a Pipeline from configuration. Functional options applied
// after initialization can override any collaborator for testing.
func New(cfg *Config, opts ...Option) (*Pipeline, error) {
	observerName := cfg.Observer
	if observerName == "" {
		observerName = "noop"
	}
	observer, err := observability.GetObserver(observerName)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.StageTimeoutSeconds) * time.Second
	if cfg.StageTimeoutSeconds == 0 {
		timeout = defaultStageTimeoutSeconds * time.Second
	}

	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}

	p := &Pipeline{
		stages:   stages.NewClient(cfg.BaseURL),
		observer: observer,
		timeout:  timeout,
		language: language,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run executes one verdict computation. It either returns a complete
// FinalVerdict or fails as a whole; no partially populated verdict is ever
// exposed. A DANGEROUS verdict is a successful result, not an error.
func (p *Pipeline) Run(ctx context.Context, in Input) (*domain.FinalVerdict, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	language := in.Language
	if language == "" {
		language = p.language
	}

	runID := uuid.NewString()

	p.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "pipeline.Run",
		Data: map[string]any{
			"run_id":        runID,
			"loan_amount":   in.Loan.Amount,
			"tenure_months": in.Loan.TenureMonths,
			"language":      language,
		},
	})

	stabilityReq := stages.StabilityRequest{
		Income:        in.Profile.MonthlyIncome,
		Expenses:      in.Profile.MonthlyExpenses,
		Savings:       in.Profile.Savings,
		EmergencyFund: in.Profile.Savings,
		Assets:        in.Profile.TotalAssets(),
		ExistingEMIs:  in.Profile.ExistingEMIs,
		Dependents:    in.Profile.Dependents,
		Language:      language,
	}

	lender := in.Loan.Lender
	if lender == "" {
		lender = defaultLenderName
	}
	loanReq := stages.LoanAnalysisRequest{
		Amount:        in.Loan.Amount,
		InterestRate:  in.Loan.InterestRate,
		TenureMonths:  in.Loan.TenureMonths,
		LenderName:    lender,
		Purpose:       in.Loan.Purpose,
		MonthlyIncome: in.Profile.MonthlyIncome,
		Language:      language,
	}

	var (
		stability *stages.StabilityResult
		burden    *stages.BurdenResult
		necessity *stages.NecessityResult
		market    *stages.MarketResult
	)

	g, gctx := errgroup.WithContext(ctx)

	// Stability feeds Necessity; the chain runs as one task so Necessity
	// starts the moment Stability resolves.
	g.Go(func() error {
		s, err := call(gctx, p, runID, specStability, func(c context.Context) (*stages.StabilityResult, error) {
			return p.stages.Stability(c, stabilityReq)
		})
		if err != nil {
			return err
		}
		stability = s

		n, err := call(gctx, p, runID, specNecessity, func(c context.Context) (*stages.NecessityResult, error) {
			return p.stages.Necessity(c, stages.NecessityRequest{
				LoanPurpose:             in.Loan.Purpose,
				LoanAmount:              in.Loan.Amount,
				FinancialStabilityScore: s.StabilityScore,
				Savings:                 in.Profile.Savings,
				EmergencyFund:           in.Profile.Savings,
				Language:                language,
			})
		})
		if err != nil {
			return err
		}
		necessity = n
		return nil
	})

	g.Go(func() error {
		b, err := call(gctx, p, runID, specBurden, func(c context.Context) (*stages.BurdenResult, error) {
			return p.stages.Burden(c, loanReq)
		})
		if err != nil {
			return err
		}
		burden = b
		return nil
	})

	g.Go(func() error {
		m, err := call(gctx, p, runID, specMarket, func(c context.Context) (*stages.MarketResult, error) {
			return p.stages.Market(c, loanReq)
		})
		if err != nil {
			return err
		}
		market = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, p.fail(ctx, runID, err)
	}

	synthesis, err := call(ctx, p, runID, specSynthesis, func(c context.Context) (*stages.SynthesisResult, error) {
		return p.stages.Synthesis(c, stages.SynthesisRequest{
			FinancialStabilityScore: stability.StabilityScore,
			CreditScoreBand:         string(in.Credit.Band),
			LoanBurdenScore:         burden.BurdenScore,
			LoanNecessityLevel:      necessity.NecessityLevel,
			MarketIsFair:            market.IsFair,
			Language:                language,
			MonthlyIncome:           in.Profile.MonthlyIncome,
			MonthlyExpenses:         in.Profile.MonthlyExpenses,
			LoanAmount:              in.Loan.Amount,
			ExistingEMIs:            in.Profile.ExistingEMIs,
			DesiredEMI:              burden.TotalPayable / float64(in.Loan.TenureMonths),
		})
	})
	if err != nil {
		return nil, p.fail(ctx, runID, err)
	}

	// Separate failure domain: a failed negotiation only omits the script.
	script := ""
	negotiationLender := in.Loan.Lender
	if negotiationLender == "" {
		negotiationLender = negotiationLenderName
	}
	neg, err := call(ctx, p, runID, specNegotiation, func(c context.Context) (*stages.NegotiationResult, error) {
		return p.stages.Negotiation(c, stages.NegotiationRequest{
			FinancialProfile: stages.NegotiationProfile{
				StabilityRequest: stabilityReq,
				LenderName:       negotiationLender,
				LoanAmount:       in.Loan.Amount,
				InterestRate:     in.Loan.InterestRate,
			},
			DecisionSynthesis: *synthesis,
			Language:          language,
		})
	})
	if err == nil {
		script = neg.NegotiationScript
	}

	verdict := MapVerdict(stability, burden, synthesis, script)

	p.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "pipeline.Run",
		Data: map[string]any{
			"run_id":     runID,
			"risk_level": string(verdict.RiskLevel),
			"risk_score": verdict.RiskScore,
		},
	})

	return &verdict, nil
}

func (p *Pipeline) fail(ctx context.Context, runID string, err error) error {
	p.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunError,
		Level:     observability.LevelError,
		Timestamp: time.Now(),
		Source:    "pipeline.Run",
		Data: map[string]any{
			"run_id": runID,
			"error":  err.Error(),
		},
	})
	return err
}

// call wraps one stage invocation with the per-stage timeout, observer
// events, and the declared failure policy. Errors from required stages
// propagate as *stages.StageError; optional-stage errors are reported via a
// recovery event and returned for the caller to discard.
func call[T any](ctx context.Context, p *Pipeline, runID string, spec stageSpec, fn func(context.Context) (T, error)) (T, error) {
	sctx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.observer.OnEvent(ctx, observability.Event{
		Type:      EventStageStart,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "pipeline.Run",
		Data: map[string]any{
			"run_id":   runID,
			"stage":    spec.name,
			"optional": spec.optional,
		},
	})

	result, err := fn(sctx)

	p.observer.OnEvent(ctx, observability.Event{
		Type:      EventStageComplete,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "pipeline.Run",
		Data: map[string]any{
			"run_id": runID,
			"stage":  spec.name,
			"error":  err != nil,
		},
	})

	if err != nil {
		var stageErr *stages.StageError
		if !errors.As(err, &stageErr) {
			err = &stages.StageError{Stage: spec.name, Err: err}
		}

		if spec.optional {
			p.observer.OnEvent(ctx, observability.Event{
				Type:      EventStageRecovered,
				Level:     observability.LevelWarning,
				Timestamp: time.Now(),
				Source:    "pipeline.Run",
				Data: map[string]any{
					"run_id": runID,
					"stage":  spec.name,
					"error":  err.Error(),
				},
			})
		}

		var zero T
		return zero, err
	}

	return result, nil
}
