package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus - стадия жизненного цикла запроса анализа.
type RequestStatus string

const (
	StatusIdle    RequestStatus = "idle"
	StatusLoading RequestStatus = "loading"
	StatusSuccess RequestStatus = "success"
	StatusError   RequestStatus = "error"
)

// UserFacingErrorMessage показывается пользователю при любой ошибке запроса.
const UserFacingErrorMessage = "Failed to get a response from the server. Is it running?"

// RequestState - снимок состояния запроса.
// Result заполнен только в StatusSuccess, Error - только в StatusError.
// До первого запроса RequestID равен uuid.Nil.
type RequestState struct {
	Status    RequestStatus   `json:"status"`
	Prompt    string          `json:"prompt,omitempty"`
	RequestID uuid.UUID       `json:"request_id"`
	Result    *AnalysisResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsLoading сообщает, есть ли запрос в полете.
func (s RequestState) IsLoading() bool {
	return s.Status == StatusLoading
}

// HasSubmitted - был ли хотя бы один запрос (страница показывает блок результата).
func (s RequestState) HasSubmitted() bool {
	return s.Status != StatusIdle
}
