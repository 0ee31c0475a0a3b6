package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"steam-analysis/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// analysisClient реализует AnalysisServiceClient (интерфейс в analysis.go).
type analysisClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAnalysisServiceClient создает клиент для сервиса анализа.
// baseURL и path склеиваются в адрес эндпоинта, например http://localhost:8000 + /analyze.
func NewAnalysisServiceClient(baseURL, path string, timeout time.Duration, logger *zap.Logger) (AnalysisServiceClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL for analysis service: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &analysisClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("AnalysisServiceClient"),
	}, nil
}

// Analyze отправляет описание и разбирает ответ.
func (c *analysisClient) Analyze(ctx context.Context, requestID uuid.UUID, description string) (*domain.RawAnalysisResult, error) {
	log := c.logger.With(zap.String("url", c.endpoint), zap.String("request_id", requestID.String()))

	reqBody, err := json.Marshal(domain.AnalyzeRequest{Description: description})
	if err != nil {
		log.Error("Failed to marshal analyze request payload", zap.Error(err))
		return nil, fmt.Errorf("internal error marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		log.Error("Failed to create analyze HTTP request", zap.Error(err))
		return nil, fmt.Errorf("internal error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID.String())

	log.Debug("Sending analyze request", zap.Int("description_len", len(description)))
	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error("HTTP request to analysis service failed", zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request timed out: %v", domain.ErrNetworkFailure, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer httpResp.Body.Close()

	respBodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		log.Error("Failed to read response body from analysis service", zap.Int("status", httpResp.StatusCode), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetworkFailure, err)
	}

	// Формат тела ошибки не оговорен, любой не-2xx считаем общей ошибкой
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		log.Warn("Received error response from analysis service",
			zap.Int("status", httpResp.StatusCode),
			zap.ByteString("body", truncateBody(respBodyBytes)))
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrNetworkFailure, httpResp.StatusCode)
	}

	var raw domain.RawAnalysisResult
	if err := json.Unmarshal(respBodyBytes, &raw); err != nil {
		log.Error("Failed to unmarshal analysis response",
			zap.Int("status", httpResp.StatusCode),
			zap.ByteString("body", truncateBody(respBodyBytes)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	log.Info("Analysis response received",
		zap.Duration("latency", time.Since(start)),
		zap.Int("similar_games", len(raw.SimilarGames)),
		zap.Int("reviews", len(raw.Reviews)))
	return &raw, nil
}

const maxLoggedBody = 512

func truncateBody(body []byte) []byte {
	if len(body) > maxLoggedBody {
		return body[:maxLoggedBody]
	}
	return body
}
