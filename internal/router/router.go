package router

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cx-tal-miterani/flight-booking-system/internal/handlers"
	"github.com/cx-tal-miterani/flight-booking-system/internal/websocket"
	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *websocket.Hub, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	if logger != nil {
		r.Use(loggingMiddleware(logger))
	}

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Flights
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights", h.CreateFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{number}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)

	// Passengers and bookings
	api.HandleFunc("/flights/{number}/passengers", h.GetPassengers).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{number}/bookings", h.BookSeats).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{number}/passengers/{id}", h.CancelSeat).Methods(http.MethodDelete, http.MethodOptions)

	// WebSocket for real-time updates
	if hub != nil {
		api.HandleFunc("/flights/{number}/ws", hub.HandleWebSocket).Methods(http.MethodGet)
	}

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack passes through to the underlying writer so websocket upgrades work behind the middleware
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
