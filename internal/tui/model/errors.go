package model

import (
	"errors"
	"fmt"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/i18n"
)

// ValidationError is a local input check that failed before any network
// call was made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UserMessage turns an error into text for the user. fallback is used for
// backend rejections that carry no detail; when it is empty the HTTP code
// is shown instead.
func UserMessage(cat *i18n.Catalog, err error, fallback string) string {
	var (
		verr *ValidationError
		aerr *api.APIError
		terr *api.TransportError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Msg
	case errors.As(err, &aerr):
		if aerr.Detail != "" {
			return aerr.Detail
		}
		if fallback != "" {
			return fallback
		}
		return fmt.Sprintf("HTTP %d", aerr.StatusCode)
	case errors.As(err, &terr):
		return cat.Text(i18n.ConnectionError)
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
