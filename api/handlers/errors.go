// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	coreerrors "recipes-app/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if coreerrors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	// Handlers take no client input, so a validation failure can only come
	// from a bad source URL in server configuration.
	if coreerrors.IsValidation(err) {
		return huma.Error500InternalServerError("Recipe source misconfigured", err)
	}

	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 500 {
			return huma.Error503ServiceUnavailable("Recipe source unavailable", err)
		}
		return huma.Error502BadGateway("Recipe source request failed", err)
	}

	if coreerrors.IsDecode(err) {
		return huma.Error502BadGateway("Recipe source returned invalid JSON", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
