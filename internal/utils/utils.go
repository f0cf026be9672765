package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/safespace-dev/safespace/internal/errors"
	"github.com/safespace-dev/safespace/internal/logger"
)

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		http.Error(w, err.Error(), e.StatusCode)
		return
	}
	// default error is 500
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("decoding body", "err", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("validating body", "err", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: 400}
	}
	return nil
}

// ContentValidator enforces the shared rules for user-submitted text:
// non-empty after trimming and below the length cap.
type ContentValidator struct {
	MaxRunes int
}

func (v *ContentValidator) Text(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.Validation("Content must not be empty")
	}
	max := v.MaxRunes
	if max == 0 {
		max = 10_000
	}
	if utf8.RuneCountInString(text) > max {
		return errors.Validation("Content is too long")
	}
	return nil
}
