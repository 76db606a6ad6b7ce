package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ryotako/newsum/internal/retry"
)

// HFSummarizer calls the HuggingFace Inference API for abstractive
// summarization. It implements Capability.
type HFSummarizer struct {
	model    string
	apiToken string
	baseURL  string
	// No client timeout: model inference is long-running and blocking.
	client *http.Client
	retry  retry.Config
}

func NewHFSummarizer(model, apiToken string) *HFSummarizer {
	return &HFSummarizer{
		model:    model,
		apiToken: apiToken,
		baseURL:  "https://api-inference.huggingface.co/models",
		client:   &http.Client{},
		retry:    retry.DefaultConfig(),
	}
}

// HuggingFace Inference API request/response types

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfAPIOptions `json:"options"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfAPIOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfResult struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

func (s *HFSummarizer) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	var summary string
	err := retry.WithBackoff(ctx, s.retry, func(ctx context.Context) error {
		out, err := s.callAPI(ctx, text, maxLength, minLength)
		if err != nil {
			return err
		}
		summary = out
		return nil
	})
	if err != nil {
		return "", err
	}
	return summary, nil
}

func (s *HFSummarizer) callAPI(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	reqBody := hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength: maxLength,
			MinLength: minLength,
			DoSample:  false,
		},
		Options: hfAPIOptions{WaitForModel: true},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("huggingface: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.modelURL(), bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("huggingface: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("huggingface: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("huggingface: status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("huggingface: status %d", resp.StatusCode)
	}

	var results []hfResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("huggingface: failed to parse response: %w", err)
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		return "", fmt.Errorf("huggingface: empty response")
	}

	return results[0].SummaryText, nil
}

// Load probes the model endpoint once so that an unreachable or unknown
// model fails the run before any article is processed.
func (s *HFSummarizer) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.modelURL(), nil)
	if err != nil {
		return fmt.Errorf("huggingface: failed to create request: %w", err)
	}
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("huggingface: model %q unreachable: %w", s.model, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// 503 means the model exists but is still warming up; that is fine,
	// inference calls wait for it.
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusServiceUnavailable {
		return nil
	}
	return fmt.Errorf("huggingface: model %q not available (status %d)", s.model, resp.StatusCode)
}

func (s *HFSummarizer) modelURL() string {
	return s.baseURL + "/" + s.model
}
