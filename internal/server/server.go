// Package server serves the persisted status table over HTTP. It never
// rebuilds the table.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/pht-ctoi/ctoistatus/internal/common/httpx"
	commonmiddleware "github.com/pht-ctoi/ctoistatus/internal/common/middleware"
	"github.com/pht-ctoi/ctoistatus/internal/statusstore"
	"github.com/pht-ctoi/ctoistatus/internal/statustable"
	"github.com/rs/zerolog/log"
)

const ApiVersion = "v1"

// StatusSource gives access to the persisted status table.
type StatusSource interface {
	Load() (*statustable.Table, error)
	Path() string
}

type Options struct {
	HandleCORS    bool
	ServerVersion string
}

type StatusServer struct {
	Router *chi.Mux
	source StatusSource
	opts   Options
}

func CreateNewServer(source StatusSource, opts Options) (*StatusServer, error) {
	if source == nil {
		return nil, errors.New("status source is required")
	}
	return &StatusServer{
		Router: chi.NewRouter(),
		source: source,
		opts:   opts,
	}, nil
}

func (s *StatusServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if s.opts.HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"https://*", "http://*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{commonmiddleware.RequestIdHeader},
			MaxAge:         300,
		}))
	}
	s.Router.Get("/version", s.getVersion)
	s.Router.Get("/statuses", httpx.WrapHttpRsp(s.listStatuses))
	s.Router.Get("/statuses.csv", httpx.WrapHttpRsp(s.getStatusesCSV))
	s.Router.Get("/statuses/{ctoi}", httpx.WrapHttpRsp(s.getStatus))
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *StatusServer) ListenAndServe(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Ctx(ctx).Info().Str("port", port).Msg("serving status table")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *StatusServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, &GetVersionRsp{
		ServerVersion: "ctoistatus: " + s.opts.ServerVersion,
		ApiVersion:    ApiVersion,
	})
}

type ListStatusesRsp struct {
	Result  int              `json:"result"`
	Columns []string         `json:"columns"`
	Value   []map[string]any `json:"value"`
}

func parseQuery(r *http.Request) (statustable.Query, error) {
	var q statustable.Query
	if v := r.URL.Query().Get("sector"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return q, httpx.ErrInvalidRequest("sector must be a positive integer")
		}
		q.Sector = n
	}
	q.Disposition = r.URL.Query().Get("disposition")
	return q, nil
}

func (s *StatusServer) listStatuses(r *http.Request) (*httpx.Response, error) {
	q, err := parseQuery(r)
	if err != nil {
		return nil, err
	}
	table, err := s.source.Load()
	if err != nil {
		return nil, err
	}
	selected := table.Select(q)
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &ListStatusesRsp{
			Result:  httpx.Success,
			Columns: selected.Columns,
			Value:   selected.Objects(),
		},
	}, nil
}

func (s *StatusServer) getStatus(r *http.Request) (*httpx.Response, error) {
	ctoi := chi.URLParam(r, "ctoi")
	table, err := s.source.Load()
	if err != nil {
		return nil, err
	}
	row, ok := table.Find(ctoi)
	if !ok {
		return nil, httpx.ErrNotFound("CTOI " + ctoi + " not found")
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   row.Object(table.Columns),
	}, nil
}

func (s *StatusServer) getStatusesCSV(r *http.Request) (*httpx.Response, error) {
	b, err := os.ReadFile(s.source.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, statusstore.ErrNotAvailable
		}
		return nil, statusstore.ErrStatusTable.MsgErr("unable to read status table", err)
	}
	return &httpx.Response{
		StatusCode:  http.StatusOK,
		ContentType: httpx.ContentTypeCSV,
		Body:        b,
	}, nil
}
