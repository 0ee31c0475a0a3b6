package client

import (
	"context"

	"steam-analysis/internal/domain"

	"github.com/google/uuid"
)

// AnalysisServiceClient отправляет описание концепта в сервис анализа.
type AnalysisServiceClient interface {
	// Analyze выполняет POST с описанием и возвращает сырой ответ.
	// Ошибки оборачивают domain.ErrNetworkFailure или domain.ErrMalformedResponse.
	Analyze(ctx context.Context, requestID uuid.UUID, description string) (*domain.RawAnalysisResult, error)
}
