// Package handlers wires the HTTP routes to the service layer. Each handler
// decodes and validates the body, delegates to a service, and serializes the
// result (or a typed service error) into the shared response envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/nabinkhair42/pocket-due/internal/http/respond"
	"github.com/nabinkhair42/pocket-due/internal/service"
	"github.com/nabinkhair42/pocket-due/internal/validate"
)

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid JSON payload")

// decodeAndValidate reads the request body once, applies the field rules to
// the raw JSON object (collecting every violation), then decodes into dst.
func decodeAndValidate(r *http.Request, rules []validate.Rule, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errInvalidJSON
	}

	var values map[string]any
	if err := json.Unmarshal(body, &values); err != nil {
		return errInvalidJSON
	}
	if err := validate.Apply(rules, values); err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// writeError serializes any handler-level failure into the envelope:
// aggregated validation errors into the error field, typed service errors
// with their carried status, anything else as a 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErrs *validate.Errors
	if errors.As(err, &validationErrs) {
		respond.Fail(w, http.StatusBadRequest, "Validation failed", validationErrs.Error())
		return
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		respond.Fail(w, svcErr.Status, svcErr.Message, "")
		return
	}

	if errors.Is(err, errInvalidJSON) {
		respond.Fail(w, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}

	slog.Error("Unhandled handler error", "error", err)
	respond.Fail(w, http.StatusInternalServerError, "Internal server error", "")
}
