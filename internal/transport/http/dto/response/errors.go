package response

import (
	"net/http"

	"fourcut/internal/domain/errs"
)

const (
	CodeInvalidRequest         = "invalid_request"
	CodeAuthenticationRequired = "authentication_required"
	CodeRateLimited            = "too_many_requests"
	CodeInternal               = "internal_error"
)

func InvalidRequest(details string) ErrorResponse {
	return ErrorResponseWithDetails(http.StatusBadRequest, CodeInvalidRequest, details)
}

func AuthenticationRequired(details string) ErrorResponse {
	return ErrorResponseWithDetails(http.StatusUnauthorized, CodeAuthenticationRequired, details)
}

func RateLimited() ErrorResponse {
	return ErrorResponseWithDetails(http.StatusTooManyRequests, CodeRateLimited, "Too many requests")
}

func Internal() ErrorResponse {
	return ErrorResponseWithDetails(http.StatusInternalServerError, CodeInternal, "Internal server error")
}

// StatusFor HTTP статус для вида доменной ошибки.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict, errs.KindStateConflict:
		return http.StatusConflict
	case errs.KindUnauthorized:
		return http.StatusForbidden
	case errs.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError переводит ошибку сервиса в тело ответа. Ошибки вне доменной таксономии
// превращаются в 500 без деталей.
func FromError(err error) ErrorResponse {
	e, ok := errs.As(err)
	if !ok {
		return Internal()
	}
	return ErrorResponseWithDetails(StatusFor(e.Kind), e.Code, e.Message)
}
