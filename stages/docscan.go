package stages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// RiskClause is one flagged clause in a scanned loan document.
type RiskClause struct {
	ClauseText     string `json:"clause_text"`
	RiskLevel      string `json:"risk_level"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
}

// DocumentScanResult is the document-risk scanner output.
type DocumentScanResult struct {
	RiskClauses []RiskClause `json:"risk_clauses"`
	OverallRisk string       `json:"overall_risk"`
	Summary     string       `json:"summary"`
}

// DocumentScan uploads a loan document for clause-level risk review. Like
// Consolidation, it is a parallel feature outside the verdict pipeline.
func (c *Client) DocumentScan(ctx context.Context, filename string, doc io.Reader) (*DocumentScanResult, error) {
	const stage = "document-scan"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	if _, err := io.Copy(part, doc); err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathDocumentScan, &body)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StageError{Stage: stage, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var out DocumentScanResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &StageError{Stage: stage, Err: fmt.Errorf("decode response: %w", err)}
	}

	return &out, nil
}
