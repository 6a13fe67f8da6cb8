package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/middleware"
)

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		middleware.GetLogger(r.Context()).Error("failed to encode response", "error", err)
	}
}

// WriteMessage writes {"message": msg}.
func WriteMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, map[string]string{"message": msg})
}

// DecodeJSON reads a JSON body into dst. Malformed or empty bodies become
// EINVALID; bodies cut off by MaxBodySize become ETOOLARGE.
func DecodeJSON(r *http.Request, dst any) error {
	const op = "decode_json"

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.As(err, &maxErr):
			return domain.Errorf(domain.ETOOLARGE, op, "Request body too large")
		case errors.Is(err, io.EOF):
			return domain.Invalid(op, "Request body is empty")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return domain.NewValidationError(op, typeErr.Field, "has the wrong type")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return domain.Invalid(op, "Request body is not valid JSON")
		default:
			return domain.Invalid(op, "Request body could not be decoded")
		}
	}
	if dec.More() {
		return domain.Invalid(op, "Request body must contain a single JSON object")
	}
	return nil
}

// DecodeAndValidate decodes a JSON body and runs struct validation on it.
func DecodeAndValidate(r *http.Request, op string, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return Validate(op, dst)
}

// PathID parses a positive integer path value.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("", name, "must be a positive integer")
	}
	return id, nil
}

// Pagination reads skip and limit from the query string. Missing values are
// zero; the services apply defaults and caps.
func Pagination(r *http.Request) (skip, limit int32, err error) {
	q := r.URL.Query()
	if skip, err = queryInt32(q.Get("skip"), "skip", err); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt32(q.Get("limit"), "limit", err); err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func queryInt32(raw, name string, prev error) (int32, error) {
	if raw == "" {
		return 0, prev
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, domain.AddFieldError(prev, name, "must be an integer")
	}
	return int32(n), prev
}
