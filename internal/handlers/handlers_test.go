package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cx-tal-miterani/flight-booking-system/internal/service"
	"github.com/cx-tal-miterani/flight-booking-system/internal/service/mocks"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet)
	api.HandleFunc("/flights", h.CreateFlight).Methods(http.MethodPost)
	api.HandleFunc("/flights/{number}", h.GetFlight).Methods(http.MethodGet)
	api.HandleFunc("/flights/{number}/passengers", h.GetPassengers).Methods(http.MethodGet)
	api.HandleFunc("/flights/{number}/bookings", h.BookSeats).Methods(http.MethodPost)
	api.HandleFunc("/flights/{number}/passengers/{id}", h.CancelSeat).Methods(http.MethodDelete)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	return r
}

func TestHandler_GetFlights(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	handler := NewHandler(mockService)
	router := setupTestRouter(handler)

	expectedFlights := []models.FlightSummary{
		{
			FlightNumber:   101,
			Source:         "Mumbai",
			Destination:    "South Korea",
			TicketCost:     200.00,
			TotalSeats:     10,
			AvailableSeats: 10,
		},
	}

	mockService.On("ListFlights", mock.Anything).Return(expectedFlights)

	req := httptest.NewRequest(http.MethodGet, "/api/flights", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []models.FlightSummary
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, 101, response[0].FlightNumber)

	mockService.AssertExpectations(t)
}

func TestHandler_GetFlightsEmpty(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	router := setupTestRouter(NewHandler(mockService))

	mockService.On("ListFlights", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/flights", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_GetFlight(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		flightNumber   int
		mockReturn     *models.FlightSummary
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:           "flight found",
			path:           "101",
			flightNumber:   101,
			mockReturn:     &models.FlightSummary{FlightNumber: 101},
			expectedStatus: http.StatusOK,
			shouldCallMock: true,
		},
		{
			name:           "flight not found",
			path:           "999",
			flightNumber:   999,
			mockError:      fmt.Errorf("%w: 999", service.ErrFlightNotFound),
			expectedStatus: http.StatusNotFound,
			shouldCallMock: true,
		},
		{
			name:           "invalid flight number",
			path:           "abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockBookingService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			if tt.shouldCallMock {
				mockService.On("GetFlight", mock.Anything, tt.flightNumber).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/flights/"+tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_CreateFlight(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *models.AddFlightResponse
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name: "valid flight",
			requestBody: models.CreateFlightRequest{
				FlightNumber:  105,
				TicketCost:    250,
				Date:          "2024-10-30",
				DepartureTime: "09:00",
				ArrivalTime:   "11:00",
				Source:        "Mumbai",
				Destination:   "Dubai",
			},
			mockReturn:     &models.AddFlightResponse{Flight: models.FlightSummary{FlightNumber: 105}, Result: "inserted"},
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name:           "missing flight number",
			requestBody:    models.CreateFlightRequest{Source: "Mumbai"},
			mockError:      fmt.Errorf("%w: flight number must be positive", service.ErrInvalidFlight),
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: true,
		},
		{
			name:           "malformed body",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate rejected",
			requestBody:    models.CreateFlightRequest{FlightNumber: 101},
			mockError:      service.ErrDuplicateFlight,
			expectedStatus: http.StatusConflict,
			shouldCallMock: true,
		},
		{
			name:           "invalid fields",
			requestBody:    models.CreateFlightRequest{FlightNumber: 106},
			mockError:      fmt.Errorf("%w: date", service.ErrInvalidFlight),
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockBookingService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			body, _ := json.Marshal(tt.requestBody)

			if tt.shouldCallMock {
				mockService.On("AddFlight", mock.Anything, mock.AnythingOfType("*models.CreateFlightRequest")).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/flights", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_CreateFlight_ReportsServiceError(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	router := setupTestRouter(NewHandler(mockService))

	mockService.On("AddFlight", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: flight number must be positive", service.ErrInvalidFlight))

	body, _ := json.Marshal(models.CreateFlightRequest{FlightNumber: -3})
	req := httptest.NewRequest(http.MethodPost, "/api/flights", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid flight: flight number must be positive", resp.Error)
}

func TestHandler_GetFlights_UnencodableResponse(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	router := setupTestRouter(NewHandler(mockService))

	mockService.On("ListFlights", mock.Anything).Return([]models.FlightSummary{
		{FlightNumber: 105, TicketCost: math.NaN()},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/flights", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "failed to encode response", resp.Error)
}

func TestHandler_BookSeats(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		requestBody    models.BookSeatsRequest
		mockReturn     *models.BookingConfirmation
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:        "valid booking",
			path:        "101",
			requestBody: models.BookSeatsRequest{PassengerNames: []string{"Alice", "Bob"}},
			mockReturn: &models.BookingConfirmation{
				FlightNumber: 101,
				Seats: []models.BookedSeat{
					{PassengerID: 10010, Name: "Alice", SeatNumber: 1},
					{PassengerID: 10009, Name: "Bob", SeatNumber: 2},
				},
				TotalCost:      400,
				AvailableSeats: 8,
			},
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name:           "no passengers",
			path:           "101",
			requestBody:    models.BookSeatsRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "insufficient seats",
			path:           "101",
			requestBody:    models.BookSeatsRequest{PassengerNames: []string{"Alice", "Bob"}},
			mockError:      fmt.Errorf("%w: only 1 seats available on flight 101", service.ErrInsufficientSeats),
			expectedStatus: http.StatusConflict,
			shouldCallMock: true,
		},
		{
			name:           "queue full",
			path:           "101",
			requestBody:    models.BookSeatsRequest{PassengerNames: []string{"Alice", "Bob"}},
			mockError:      fmt.Errorf("flight 101: %w", service.ErrQueueFull),
			expectedStatus: http.StatusServiceUnavailable,
			shouldCallMock: true,
		},
		{
			name:           "blank name",
			path:           "101",
			requestBody:    models.BookSeatsRequest{PassengerNames: []string{"Alice", "Bob"}},
			mockError:      fmt.Errorf("passenger 2: %w", service.ErrNameRequired),
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: true,
		},
		{
			name:           "invalid flight number",
			path:           "x1",
			requestBody:    models.BookSeatsRequest{PassengerNames: []string{"Alice"}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockBookingService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			body, _ := json.Marshal(tt.requestBody)

			if tt.shouldCallMock {
				mockService.On("BookSeats", mock.Anything, 101, len(tt.requestBody.PassengerNames),
					service.NameList(tt.requestBody.PassengerNames)).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/flights/"+tt.path+"/bookings", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusCreated {
				var confirmation models.BookingConfirmation
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&confirmation))
				assert.Equal(t, 400.0, confirmation.TotalCost)
				assert.Len(t, confirmation.Seats, 2)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetPassengers(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	router := setupTestRouter(NewHandler(mockService))

	mockService.On("ListPassengers", mock.Anything, 101).Return([]models.PassengerSummary{
		{PassengerID: 10009, Name: "Bob", SeatNumber: 2},
		{PassengerID: 10010, Name: "Alice", SeatNumber: 1},
	}, nil)
	mockService.On("ListPassengers", mock.Anything, 404).Return(nil, service.ErrFlightNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/flights/101/passengers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var passengers []models.PassengerSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&passengers))
	require.Len(t, passengers, 2)
	assert.Equal(t, "Bob", passengers[0].Name)

	req = httptest.NewRequest(http.MethodGet, "/api/flights/404/passengers", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_CancelSeat(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockReturn     *models.CancellationResult
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:           "successful cancellation",
			path:           "/api/flights/101/passengers/10009",
			mockReturn:     &models.CancellationResult{PassengerID: 10009, FlightNumber: 101, SeatNumber: 2, AvailableSeats: 9},
			expectedStatus: http.StatusOK,
			shouldCallMock: true,
		},
		{
			name:           "passenger not found",
			path:           "/api/flights/101/passengers/10009",
			mockError:      service.ErrPassengerNotFound,
			expectedStatus: http.StatusNotFound,
			shouldCallMock: true,
		},
		{
			name:           "invalid passenger id",
			path:           "/api/flights/101/passengers/bob",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockBookingService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			if tt.shouldCallMock {
				mockService.On("CancelSeat", mock.Anything, 10009, 101).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_HealthCheck(t *testing.T) {
	router := setupTestRouter(NewHandler(new(mocks.MockBookingService)))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
