package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type httpScorer struct {
	url    string
	client *http.Client
}

type httpResponse struct {
	ComplianceScore *int   `json:"compliance_score"`
	LatestScore     *int   `json:"latest_score"`
	Model           string `json:"model"`
	Error           *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *httpScorer) Score(ctx context.Context, req *Request) (*Response, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	const maxBodyBytes = 10 * 1024 * 1024 // 10 MiB
	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	respStr := string(respBytes)

	var hr httpResponse
	if err := json.Unmarshal(respBytes, &hr); err != nil {
		return nil, fmt.Errorf("parsing response JSON (HTTP %d, body: %s): %w", resp.StatusCode, truncate(respStr, 200), err)
	}

	if resp.StatusCode != http.StatusOK {
		if hr.Error != nil && hr.Error.Message != "" {
			return nil, fmt.Errorf("scorer: %s", hr.Error.Message)
		}
		return nil, fmt.Errorf("scorer: HTTP %d: %s", resp.StatusCode, truncate(respStr, 200))
	}

	if hr.ComplianceScore == nil {
		return nil, fmt.Errorf("scorer: response has no compliance_score")
	}
	score := *hr.ComplianceScore
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("scorer: compliance_score %d out of range 0-100", score)
	}
	latest := score
	if hr.LatestScore != nil {
		latest = *hr.LatestScore
	}

	model := hr.Model
	if model == "" {
		model = "http"
	}
	return &Response{ComplianceScore: score, LatestScore: latest, Model: model}, nil
}
