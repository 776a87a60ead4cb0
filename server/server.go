package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/manager"
	"github.com/Nackophilz/fankai-jellyfin/pkg/pagination"
	"github.com/Nackophilz/fankai-jellyfin/pkg/resolve"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

type GenericResponse struct {
	Error    string           `json:"error,omitempty"`
	Response any              `json:"response"`
	Meta     *pagination.Meta `json:"meta,omitempty"`
}

// Server houses all dependencies for the API such as loggers and the manager
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.MediaManager
	validate   *validator.Validate
}

// New creates a new API server
func New(logger *zap.SugaredLogger, manager manager.MediaManager) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	_, err = w.Write(b)
	return err
}

// statusFor maps resolution errors onto http statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, resolve.ErrNoMatch):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, manager.ErrNoLibrary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err and writes it with the matching status
func handleError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	log := logger.FromCtx(r.Context())

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Errorw(msg, zap.Error(err))
	} else {
		log.Debugw(msg, zap.Error(err))
	}

	if werr := writeErrorResponse(w, status, err); werr != nil {
		log.Errorw("failed to write response", zap.Error(werr))
	}
}

func respond(w http.ResponseWriter, r *http.Request, body GenericResponse) {
	if err := writeResponse(w, http.StatusOK, body); err != nil {
		logger.FromCtx(r.Context()).Errorw("failed to write response", zap.Error(err))
	}
}

// decode reads a json body into dest and validates it
func (s Server) decode(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: invalid json body: %w", errBadRequest, err)
	}

	if err := s.validate.Struct(dest); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

// Handler builds the routes of the API
func (s Server) Handler() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/series/search", s.SearchSeries()).Methods(http.MethodGet)
	v1.HandleFunc("/series/resolve", s.ResolveSeries()).Methods(http.MethodPost)
	v1.HandleFunc("/series/{id:[0-9]+}", s.GetSeries()).Methods(http.MethodGet)
	v1.HandleFunc("/seasons/resolve", s.ResolveSeason()).Methods(http.MethodPost)
	v1.HandleFunc("/episodes/resolve", s.ResolveEpisode()).Methods(http.MethodPost)

	v1.HandleFunc("/tv", s.ListTVShows()).Methods(http.MethodGet)
	v1.HandleFunc("/bindings", s.ListBindings()).Methods(http.MethodGet)
	v1.HandleFunc("/library/reconcile", s.ReconcileLibrary()).Methods(http.MethodPost)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(rtr)
}

// Serve starts the http server and blocks until ctx is done
func (s Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.baseLogger.Infow("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err, ok := <-errs:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, GenericResponse{Response: "ok"})
	}
}

// parsePagination reads the page and pageSize query parameters
func parsePagination(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{Page: 1}

	qp := r.URL.Query()
	if v := qp.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, fmt.Errorf("%w: page must be a positive integer", errBadRequest)
		}
		params.Page = page
	}

	if v := qp.Get("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 0 {
			return params, fmt.Errorf("%w: pageSize must be a non negative integer", errBadRequest)
		}
		params.PageSize = size
	}

	return params, nil
}

// optionalInt parses a query parameter that may be absent
func optionalInt(r *http.Request, name string) (*int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return &i, nil
}
