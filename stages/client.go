// Package stages provides typed request/response clients for the remote
// analysis capabilities that feed the verdict pipeline: profile stability,
// loan burden, loan necessity, market fairness, decision synthesis, and the
// optional negotiation script, plus the auxiliary debt-consolidation
// comparator and document-risk scanner.
//
// Each client issues exactly one JSON-over-HTTP call, decodes the response
// into its typed result, and validates the response shape. Transport errors,
// non-2xx statuses, and schema violations all surface as *StageError. Clients
// never retry; retry policy belongs to the caller.
package stages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Capability endpoints, fixed for compatibility with the collaborator
// services.
const (
	pathStability     = "/agents/financial-profile"
	pathBurden        = "/agents/loan-analyzer"
	pathNecessity     = "/agents/loan-necessity"
	pathMarket        = "/agents/market-comparison"
	pathSynthesis     = "/agents/decision-synthesis"
	pathNegotiation   = "/agents/financial-mentor"
	pathConsolidation = "/agents/debt-consolidation"
	pathDocumentScan  = "/agents/legal-guardian"
)

// StageError reports a failed stage call: the network round trip did not
// complete, the service answered with a non-2xx status, or the response
// failed schema validation.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// validator is implemented by result types that can check their own shape.
type validator interface {
	validate() error
}

// Service is the set of remote analysis operations the pipeline schedules.
// The pipeline depends on this interface, not on Client, so tests can swap
// in deterministic fakes.
type Service interface {
	Stability(ctx context.Context, req StabilityRequest) (*StabilityResult, error)
	Burden(ctx context.Context, req LoanAnalysisRequest) (*BurdenResult, error)
	Necessity(ctx context.Context, req NecessityRequest) (*NecessityResult, error)
	Market(ctx context.Context, req LoanAnalysisRequest) (*MarketResult, error)
	Synthesis(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Negotiation(ctx context.Context, req NegotiationRequest) (*NegotiationResult, error)
}

// ClientOption configures a Client after default initialization.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// Client is the HTTP implementation of Service plus the auxiliary
// collaborator operations.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the stage service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// post issues one JSON request against path and decodes the body into out.
// out is validated when it implements the validator interface.
func (c *Client) post(ctx context.Context, stage, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &StageError{Stage: stage, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StageError{Stage: stage, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &StageError{Stage: stage, Err: fmt.Errorf("decode response: %w", err)}
	}

	if v, ok := out.(validator); ok {
		if err := v.validate(); err != nil {
			return &StageError{Stage: stage, Err: fmt.Errorf("response schema: %w", err)}
		}
	}

	return nil
}
