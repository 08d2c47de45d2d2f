package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/localgroup-vla/qaplotter/modules"
)

func WithErrorHandle(hndl func(w http.ResponseWriter, r *http.Request) error,
) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		err := hndl(w, r)
		if err == nil {
			return
		}
		status := http.StatusInternalServerError
		var httpErr *modules.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Status
		}
		slog.Warn("request failed", "path", r.URL.Path, "status", status, "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(err.Error()))
	}
}

// Api registers module routes on a gorilla/mux router.
type Api struct {
	router *mux.Router
}

var _ modules.Api = &Api{}

func NewApi() *Api {
	return &Api{router: mux.NewRouter()}
}

func (a *Api) RegisterRoute(r *modules.Route) {
	a.router.HandleFunc(r.Path, WithErrorHandle(r.Handler)).Methods(r.Methods...)
}

func (a *Api) GetPathParams(r *http.Request) map[string]string {
	return mux.Vars(r)
}

// Handle mounts a plain handler, e.g. the metrics endpoint.
func (a *Api) Handle(path string, h http.Handler) {
	a.router.Handle(path, h)
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
