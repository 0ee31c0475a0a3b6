package domain

import "errors"

var (
	// ErrEmptyInput - описание пустое после trim. Не показывается пользователю.
	ErrEmptyInput = errors.New("description is empty")
	// ErrRequestInFlight - предыдущий запрос еще не завершен. Не показывается пользователю.
	ErrRequestInFlight = errors.New("analysis request already in flight")
	// ErrNetworkFailure - транспортная ошибка или не-2xx ответ.
	ErrNetworkFailure = errors.New("analysis service request failed")
	// ErrMalformedResponse - тело ответа не разбирается.
	ErrMalformedResponse = errors.New("malformed analysis response")
	// ErrNoResult - операция требует успешного результата, а его нет.
	ErrNoResult = errors.New("no analysis result available")
)

// ErrorResponse - тело ошибки HTTP API клиента.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeEmptyInput      = "empty_input"
	ErrCodeRequestInFlight = "request_in_flight"
	ErrCodeNoResult        = "no_result"
	ErrCodeBadRequest      = "bad_request"
	ErrCodeInternal        = "internal_error"
)
