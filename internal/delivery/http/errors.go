package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/logger"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/response"
)

// errorResponse maps a use case error to the response envelope.
func errorResponse(ctx context.Context, err error) response.BaseResponse {
	if details, ok := shared.ValidationDetails(err); ok {
		return response.ValidationFailed([]response.ValidationError{
			{Field: details.Field, Message: details.Message},
		})
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		return response.NotFound(err.Error())
	case errors.Is(err, shared.ErrRuleViolation):
		return response.Conflict(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout("request timed out")
	case errors.Is(err, context.Canceled):
		return response.ServiceUnavailable("request canceled")
	default:
		logger.FromContext(ctx).Error().Err(err).Msg("Unhandled error")
		return response.InternalError("internal server error")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	response.Write(w, response.WithData(errorResponse(r.Context(), err), nil))
}

func writeValidation(w http.ResponseWriter, field, message string) {
	response.Write(w, response.WithData(response.ValidationFailed([]response.ValidationError{
		{Field: field, Message: message},
	}), nil))
}

func writeData(w http.ResponseWriter, base response.BaseResponse, data interface{}) {
	response.Write(w, response.WithData(base, data))
}
