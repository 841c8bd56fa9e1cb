package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is what the platform knows about a document after verification.
// The verifier itself is a black box behind this interface.
type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

type Service interface {
	Verify(ctx context.Context, fileURL, documentType string) (Result, error)
}

// APIService calls the external document-verification API.
type APIService struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewAPIService(baseURL, apiKey string) *APIService {
	return &APIService{
		Client:  &http.Client{Timeout: 15 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
	}
}

type verifyRequest struct {
	FileURL      string `json:"file_url"`
	DocumentType string `json:"document_type"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    Result `json:"data"`
}

func (s *APIService) Verify(ctx context.Context, fileURL, documentType string) (Result, error) {
	if fileURL == "" || documentType == "" {
		return Result{}, fmt.Errorf("file url and document type are required")
	}

	jsonBody, _ := json.Marshal(verifyRequest{FileURL: fileURL, DocumentType: documentType})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v1/documents/verify", bytes.NewBuffer(jsonBody))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var apiResp verifyResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return Result{}, fmt.Errorf("failed to parse response: %v", err)
	}

	if !apiResp.Success {
		return Result{}, fmt.Errorf("verification api error: %s", apiResp.Message)
	}

	return apiResp.Data, nil
}

// StubService accepts every document. Used when no verification endpoint is
// configured (local development).
type StubService struct{}

func (StubService) Verify(ctx context.Context, fileURL, documentType string) (Result, error) {
	if fileURL == "" || documentType == "" {
		return Result{}, fmt.Errorf("file url and document type are required")
	}
	return Result{IsValid: true}, nil
}
