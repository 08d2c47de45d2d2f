package modules

import (
	"fmt"
	"net/http"
)

type Api interface {
	RegisterRoute(r *Route)
	GetPathParams(r *http.Request) map[string]string
}

type Route struct {
	Path    string
	Methods []string
	Handler func(w http.ResponseWriter, r *http.Request) error
}

// HTTPError makes a handler error answer with Status instead of 500.
type HTTPError struct {
	Status int
	Err    error
}

func (e *HTTPError) Error() string {
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Err: fmt.Errorf(format, args...)}
}
