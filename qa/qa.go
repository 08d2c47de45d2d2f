// Package qa serves the QA tables of one pipeline run over HTTP.
package qa

import (
	"net/http"

	"github.com/localgroup-vla/qaplotter/modules"
	"github.com/localgroup-vla/qaplotter/qa/handlers"
	"github.com/localgroup-vla/qaplotter/qa/repository"
	"github.com/localgroup-vla/qaplotter/qa/spwmap"
)

func Init(api modules.Api, registry *repository.Registry, spws spwmap.Map, corrs []string) *handlers.Handlers {
	h := &handlers.Handlers{
		API:      api,
		Registry: registry,
		SpwMap:   spws,
		Corrs:    corrs,
	}
	InitHandlers(api, h)
	return h
}

func InitHandlers(api modules.Api, h *handlers.Handlers) {
	api.RegisterRoute(&modules.Route{
		Path:    "/fields",
		Methods: []string{"GET"},
		Handler: h.ListFieldsHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/fields/{field}",
		Methods: []string{"GET"},
		Handler: h.FieldHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/fields/{field}/{table}",
		Methods: []string{"GET"},
		Handler: h.FieldTableHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/caltables/{kind}",
		Methods: []string{"GET"},
		Handler: h.CalTablesHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/caltables/{kind}/{table}/{id:[0-9]+}",
		Methods: []string{"GET"},
		Handler: h.CalTableHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/spw",
		Methods: []string{"GET"},
		Handler: h.SpwHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/query",
		Methods: []string{"POST"},
		Handler: h.QueryHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/reload",
		Methods: []string{"POST"},
		Handler: h.ReloadHandler,
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/ping",
		Methods: []string{"GET"},
		Handler: func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		},
	})
	api.RegisterRoute(&modules.Route{
		Path:    "/health",
		Methods: []string{"GET"},
		Handler: func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte("OK"))
			return err
		},
	})
}
