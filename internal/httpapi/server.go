// Package httpapi exposes the dashboard HTTP surface: order listing with
// batched details, mark-paid, CSV export, health and metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/p2pdesk/orders-dashboard/pkg/auth"
	"github.com/p2pdesk/orders-dashboard/pkg/batch"
	"github.com/p2pdesk/orders-dashboard/pkg/client"
	"github.com/p2pdesk/orders-dashboard/pkg/export"
	"github.com/p2pdesk/orders-dashboard/pkg/listcache"
)

// OrderService is the subset of the trade API client used by the handlers.
type OrderService interface {
	ListOrders(ctx context.Context, q client.ListQuery) (*client.OrderPage, error)
	MarkPaid(ctx context.Context, id string) error
}

// DetailBatcher resolves detail records for a list of order ids.
type DetailBatcher interface {
	FetchAllDetails(ctx context.Context, ids []string) ([]client.OrderDetail, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	orders  OrderService
	batcher DetailBatcher
	lists   *listcache.Cache
	router  chi.Router
	logger  zerolog.Logger
}

// New creates the dashboard server and mounts its routes.
func New(orders OrderService, batcher DetailBatcher, lists *listcache.Cache, logger zerolog.Logger) *Server {
	s := &Server{
		orders:  orders,
		batcher: batcher,
		lists:   lists,
		router:  chi.NewRouter(),
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(RequestLogger(s.logger))

	s.router.Get("/health", s.health)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router.Route("/api/orders", func(r chi.Router) {
		r.Get("/", s.listOrders)
		r.Get("/export", s.exportOrders)
		r.Post("/{id}/pay", s.markPaid)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// listResponse is the JSON shape consumed by the order table.
type listResponse struct {
	Orders []client.OrderDetail `json:"orders"`
	Total  int                  `json:"total"`
	Page   int                  `json:"page"`
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)

	page, details, err := s.loadPage(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, listResponse{
		Orders: details,
		Total:  page.Total,
		Page:   page.Page,
	})
}

func (s *Server) exportOrders(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)

	page, details, err := s.loadPage(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="orders-%s.csv"`, time.Now().Format("20060102-150405")))

	if err := export.WriteCSV(w, page.IDs(), details); err != nil {
		// Headers are already sent; log instead of rewriting the status.
		s.logger.Error().Err(err).Msg("CSV export failed mid-stream")
	}
}

func (s *Server) markPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "order id required", http.StatusBadRequest)
		return
	}

	if err := s.orders.MarkPaid(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	// The order's status changed; cached list pages are stale.
	s.lists.Purge()

	writeJSON(w, map[string]string{"id": id, "status": "paid"})
}

// loadPage fetches one list page (through the list cache) and resolves its
// detail records.
func (s *Server) loadPage(ctx context.Context, query client.ListQuery) (*client.OrderPage, []client.OrderDetail, error) {
	page, ok := s.lists.Get(query)
	if !ok {
		fetched, err := s.orders.ListOrders(ctx, query)
		if err != nil {
			return nil, nil, err
		}
		s.lists.Put(query, fetched)
		page = fetched
	}

	details, err := s.batcher.FetchAllDetails(ctx, page.IDs())
	if err != nil {
		return nil, nil, err
	}
	return page, details, nil
}

// writeError maps the error taxonomy onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var reqErr *client.RequestFailedError

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		http.Error(w, "missing trade API credential", http.StatusUnauthorized)
	case errors.Is(err, batch.ErrInvalidChunkSize):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.As(err, &reqErr) && reqErr.StatusCode >= 400 && reqErr.StatusCode < 500:
		// Upstream rejected the request itself (unknown order, already paid).
		http.Error(w, reqErr.Message, reqErr.StatusCode)
	default:
		http.Error(w, "trade API unavailable", http.StatusBadGateway)
	}
}

func parseListQuery(r *http.Request) client.ListQuery {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size < 1 || size > 100 {
		size = 20
	}

	return client.ListQuery{
		Page:   page,
		Size:   size,
		Status: q.Get("status"),
		Side:   q.Get("side"),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
