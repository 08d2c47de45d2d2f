package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/localgroup-vla/qaplotter/modules"
	"github.com/localgroup-vla/qaplotter/qa/parsers"
	"github.com/localgroup-vla/qaplotter/qa/repository"
	"github.com/localgroup-vla/qaplotter/qa/shared"
	"github.com/localgroup-vla/qaplotter/qa/spwmap"
	"github.com/localgroup-vla/qaplotter/service/db"
	"github.com/localgroup-vla/qaplotter/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handlers struct {
	API      modules.Api
	Registry *repository.Registry
	SpwMap   spwmap.Map
	// Corrs is the correlation selection applied to exports unless the
	// request names its own.
	Corrs []string
}

var contentTypes = map[string]string{
	"txt":     "text/plain; charset=utf-8",
	"ndjson":  "application/x-ndjson",
	"parquet": "application/vnd.apache.parquet",
}

func writeJSON(w http.ResponseWriter, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(append(body, '\n'))
	return err
}

func (h *Handlers) ListFieldsHandler(w http.ResponseWriter, r *http.Request) error {
	fields, err := h.Registry.Fields(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, fields)
}

func (h *Handlers) field(r *http.Request) (*shared.FieldCollection, error) {
	name := h.API.GetPathParams(r)["field"]
	c, err := h.Registry.Field(r.Context(), name)
	if err != nil {
		return nil, err
	}
	if len(c.Tables) == 0 {
		return nil, modules.NewHTTPError(http.StatusNotFound, "field %s has no tables", name)
	}
	return c, nil
}

func (h *Handlers) FieldHandler(w http.ResponseWriter, r *http.Request) error {
	c, err := h.field(r)
	if err != nil {
		return err
	}
	return writeJSON(w, SummarizeField(c))
}

func (h *Handlers) FieldTableHandler(w http.ResponseWriter, r *http.Request) error {
	c, err := h.field(r)
	if err != nil {
		return err
	}
	tt, err := shared.ParseTableType(h.API.GetPathParams(r)["table"])
	if err != nil {
		return &modules.HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	table, ok := c.Get(tt)
	if !ok {
		return modules.NewHTTPError(http.StatusNotFound, "field %s has no %s table", c.Field, tt)
	}
	return h.export(w, r, table, c.Meta[tt])
}

func (h *Handlers) CalTablesHandler(w http.ResponseWriter, r *http.Request) error {
	c, err := h.calTables(r)
	if err != nil {
		return err
	}
	return writeJSON(w, SummarizeCal(c))
}

func (h *Handlers) CalTableHandler(w http.ResponseWriter, r *http.Request) error {
	c, err := h.calTables(r)
	if err != nil {
		return err
	}
	params := h.API.GetPathParams(r)
	tt, err := shared.ParseTableType(params["table"])
	if err != nil {
		return &modules.HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return modules.NewHTTPError(http.StatusBadRequest, "invalid id %q", params["id"])
	}
	table, ok := c.Tables[tt][id]
	if !ok {
		return modules.NewHTTPError(http.StatusNotFound, "%s has no %s table for %s %d",
			c.Kind, tt, tt.Grouping(), id)
	}
	return h.export(w, r, table, c.Meta[tt][id])
}

func (h *Handlers) calTables(r *http.Request) (*shared.CalCollection, error) {
	kind, err := shared.ParseCalKind(h.API.GetPathParams(r)["kind"])
	if err != nil {
		return nil, &modules.HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	c, err := h.Registry.CalTables(r.Context(), kind)
	var mismatch *shared.SchemaMismatchError
	if errors.As(err, &mismatch) {
		return nil, &modules.HTTPError{Status: http.StatusConflict, Err: err}
	}
	return c, err
}

// export writes table in the requested format after applying the where,
// corrs and sort query parameters.
func (h *Handlers) export(w http.ResponseWriter, r *http.Request, table *shared.RawTable, md shared.Metadata) error {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "ndjson"
	}
	writer, err := parsers.GetWriter("table." + format)
	if err != nil {
		return &modules.HTTPError{Status: http.StatusBadRequest, Err: err}
	}

	corrs := h.Corrs
	if q.Has("corrs") {
		corrs = nil
		if v := q.Get("corrs"); v != "" {
			corrs = strings.Split(v, ",")
		}
	}
	if len(corrs) > 0 && table.HasColumn("corr") {
		if table, err = table.FilterIn("corr", corrs...); err != nil {
			return err
		}
	}
	if where := q.Get("where"); where != "" {
		if table, err = table.Where(where); err != nil {
			return &modules.HTTPError{Status: http.StatusBadRequest, Err: err}
		}
	}
	if sort := q.Get("sort"); sort != "" {
		if table, err = table.SortBy(strings.Split(sort, ",")...); err != nil {
			return &modules.HTTPError{Status: http.StatusBadRequest, Err: err}
		}
	}
	if table.NumColumns() == 0 {
		return modules.NewHTTPError(http.StatusNotFound, "table is empty")
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, table, md); err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

func (h *Handlers) SpwHandler(w http.ResponseWriter, r *http.Request) error {
	spws := h.SpwMap
	if spws == nil {
		spws = spwmap.Map{}
	}
	res := make(map[string]string, len(spws))
	for _, id := range spws.IDs() {
		res[strconv.Itoa(id)] = spws[id]
	}
	return writeJSON(w, res)
}

// QueryHandler runs the SQL body against the tables of one field. Each
// table type is a SQL table named after its tag, e.g. amp_time.
func (h *Handlers) QueryHandler(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()
	query, format, err := utils.ReadQuery(r.Body, r.URL.Query().Get("default_format"))
	if err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		return modules.NewHTTPError(http.StatusBadRequest, "length of query is empty")
	}
	if r.URL.Query().Get("field") == "" {
		return modules.NewHTTPError(http.StatusBadRequest, "field is required")
	}
	c, err := h.Registry.Field(r.Context(), r.URL.Query().Get("field"))
	if err != nil {
		return err
	}
	tables := make(map[string]*shared.RawTable, len(c.Tables))
	for tt, t := range c.Tables {
		tables[tt.String()] = t
	}
	start := time.Now()
	res, err := db.Query(r.Context(), tables, query, format)
	if err != nil {
		return &modules.HTTPError{Status: http.StatusBadRequest, Err: fmt.Errorf("query failed: %w", err)}
	}
	queryDuration.Observe(time.Since(start).Seconds())
	w.WriteHeader(http.StatusOK)
	_, err = w.Write([]byte(res))
	return err
}

func (h *Handlers) ReloadHandler(w http.ResponseWriter, r *http.Request) error {
	h.Registry.Reset()
	w.WriteHeader(http.StatusNoContent)
	return nil
}
