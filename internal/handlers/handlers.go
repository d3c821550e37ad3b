package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cx-tal-miterani/flight-booking-system/internal/service"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
}

// NewHandler creates a new Handler instance
func NewHandler(bookingService service.BookingService) *Handler {
	return &Handler{
		bookingService: bookingService,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

// respondServiceError maps engine errors to status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFlightNotFound), errors.Is(err, service.ErrPassengerNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInsufficientSeats), errors.Is(err, service.ErrDuplicateFlight):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrQueueFull):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrInvalidFlight), errors.Is(err, service.ErrInvalidSeatCount), errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidName):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func pathInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	return n, err == nil
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	flights := h.bookingService.ListFlights(r.Context())
	if flights == nil {
		flights = []models.FlightSummary{}
	}
	respondJSON(w, http.StatusOK, flights)
}

// CreateFlight handles POST /api/flights
func (h *Handler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.bookingService.AddFlight(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// GetFlight handles GET /api/flights/{number}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	number, ok := pathInt(r, "number")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid flight number")
		return
	}

	flight, err := h.bookingService.GetFlight(r.Context(), number)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// GetPassengers handles GET /api/flights/{number}/passengers
func (h *Handler) GetPassengers(w http.ResponseWriter, r *http.Request) {
	number, ok := pathInt(r, "number")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid flight number")
		return
	}

	passengers, err := h.bookingService.ListPassengers(r.Context(), number)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if passengers == nil {
		passengers = []models.PassengerSummary{}
	}
	respondJSON(w, http.StatusOK, passengers)
}

// BookSeats handles POST /api/flights/{number}/bookings
func (h *Handler) BookSeats(w http.ResponseWriter, r *http.Request) {
	number, ok := pathInt(r, "number")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid flight number")
		return
	}

	var req models.BookSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.PassengerNames) == 0 {
		respondError(w, http.StatusBadRequest, "At least one passenger name is required")
		return
	}

	confirmation, err := h.bookingService.BookSeats(r.Context(), number, len(req.PassengerNames), service.NameList(req.PassengerNames))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, confirmation)
}

// CancelSeat handles DELETE /api/flights/{number}/passengers/{id}
func (h *Handler) CancelSeat(w http.ResponseWriter, r *http.Request) {
	number, ok := pathInt(r, "number")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid flight number")
		return
	}
	passengerID, ok := pathInt(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid passenger ID")
		return
	}

	result, err := h.bookingService.CancelSeat(r.Context(), passengerID, number)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
