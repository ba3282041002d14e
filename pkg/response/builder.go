// Package response provides utilities for building API responses.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// BaseResponse fields.
const (
	StatusSuccess         = "200"
	StatusCreated         = "201"
	StatusBadRequest      = "400"
	StatusNotFound        = "404"
	StatusConflict        = "409"
	StatusTooManyRequests = "429"
	StatusInternalError   = "500"
	StatusServiceUnavail  = "503"
	StatusGatewayTimeout  = "504"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BaseResponse is the standard response format.
type BaseResponse struct {
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
	StatusCode       string            `json:"status_code"`
	IsSuccess        bool              `json:"is_success"`
	Message          string            `json:"message"`
}

// HTTPStatus returns the numeric status code, or 500 when StatusCode is malformed.
func (b BaseResponse) HTTPStatus() int {
	code, err := strconv.Atoi(b.StatusCode)
	if err != nil || code < 100 || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}

// Response wraps a BaseResponse with an optional payload.
type Response struct {
	Base BaseResponse `json:"base"`
	Data interface{}  `json:"data,omitempty"`
}

// WithData attaches data to base.
func WithData(base BaseResponse, data interface{}) Response {
	return Response{Base: base, Data: data}
}

// Write encodes resp as JSON with the status carried by its base.
func Write(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Base.HTTPStatus())
	_ = json.NewEncoder(w).Encode(resp)
}

// Success creates a successful response.
func Success(message string) BaseResponse {
	return BaseResponse{
		StatusCode: StatusSuccess,
		IsSuccess:  true,
		Message:    message,
	}
}

// Created creates a successful creation response.
func Created(message string) BaseResponse {
	return BaseResponse{
		StatusCode: StatusCreated,
		IsSuccess:  true,
		Message:    message,
	}
}

// BadRequest creates a bad request response.
func BadRequest(message string) BaseResponse {
	return failure(StatusBadRequest, message)
}

// NotFound creates a not found response.
func NotFound(message string) BaseResponse {
	return failure(StatusNotFound, message)
}

// Conflict creates a conflict response.
func Conflict(message string) BaseResponse {
	return failure(StatusConflict, message)
}

// TooManyRequests creates a rate limit response.
func TooManyRequests(message string) BaseResponse {
	return failure(StatusTooManyRequests, message)
}

// InternalError creates an internal server error response.
func InternalError(message string) BaseResponse {
	return failure(StatusInternalError, message)
}

// ServiceUnavailable creates a service unavailable response.
func ServiceUnavailable(message string) BaseResponse {
	return failure(StatusServiceUnavail, message)
}

// GatewayTimeout creates a timeout response.
func GatewayTimeout(message string) BaseResponse {
	return failure(StatusGatewayTimeout, message)
}

// ValidationFailed creates a validation error response.
func ValidationFailed(errors []ValidationError) BaseResponse {
	return BaseResponse{
		ValidationErrors: errors,
		StatusCode:       StatusBadRequest,
		IsSuccess:        false,
		Message:          "Validation failed",
	}
}

func failure(code, message string) BaseResponse {
	return BaseResponse{
		StatusCode: code,
		IsSuccess:  false,
		Message:    message,
	}
}
