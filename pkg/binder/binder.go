// Package binder decodes JSON request bodies into typed inputs.
package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// MaxBodySize bounds request bodies read by JSON.
const MaxBodySize = 1 << 20

var (
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrInvalidJSON          = errors.New("binder: invalid json body")
	ErrBodyTooLarge         = errors.New("binder: request body too large")
)

// JSON decodes the request body into v. The body must be a single JSON
// value of at most MaxBodySize bytes with no unknown fields. A missing
// Content-Type is accepted; any other media type than application/json is
// not.
func JSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, ct)
		}
	}
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return errors.Join(ErrInvalidJSON, err)
	}
	if len(body) > MaxBodySize {
		return ErrBodyTooLarge
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after value", ErrInvalidJSON)
	}
	return nil
}
