package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var (
	errInvalidID = errors.New("invalid id")
	errEmptyBody = errors.New("empty request body")
)

// parseID reads an integer path parameter. Zero and negative ids parse;
// no row carries them, so they end up as not found.
func parseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidID, name, raw)
	}
	return id, nil
}

// decodeJSON decodes a single JSON object into dst. Unknown fields are
// rejected.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}

	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

// writeDecodeError maps a decodeJSON failure to a 400 or 413.
func writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body: "+err.Error())
}

// writeIDError writes the response for an unparseable path id.
func writeIDError(w http.ResponseWriter, name string) {
	writeError(w, http.StatusBadRequest, "INVALID_ID", name+" must be an integer")
}
