package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

// strictMode switches the gateway from the legacy undifferentiated 500
// surface to precise per-code statuses. Set once at boot.
var strictMode atomic.Bool

// SetStrictErrors selects between the legacy and strict error surfaces.
func SetStrictErrors(on bool) {
	strictMode.Store(on)
}

// WriteSuccess writes the payload as-is with a 200. Success bodies carry no
// envelope; the entity itself is the response.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteMessage acknowledges a mutation that returns no entity.
func WriteMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, types.MessageEnvelope{Message: message})
}

// WriteError maps the error to a status and writes { "error": <message> }.
// Legacy mode keeps 400/401/429 plus 404 for direct lookups, and collapses
// every other code, including indirect not-found, to 500; strict mode uses
// the per-code metadata status.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if m := typed.Message(); m != "" && typed.Code() != pkgerrors.CodeInternal {
		msg = m
	}

	status := meta.HTTPStatus
	if !strictMode.Load() {
		switch typed.Code() {
		case pkgerrors.CodeValidation,
			pkgerrors.CodeUnauthorized,
			pkgerrors.CodeRateLimit:
		case pkgerrors.CodeNotFound:
			if typed.IsIndirect() {
				status = http.StatusInternalServerError
			}
		default:
			status = http.StatusInternalServerError
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_column":     dump.PGColumn,
			"pg_constraint": dump.PGConstraint,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, status, types.ErrorEnvelope{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
