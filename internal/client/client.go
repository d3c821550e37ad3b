package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
)

// Client talks to the flight booking API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 30*time.Second)
}

// NewClientWithTimeout creates a new API client with custom timeout
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListFlights retrieves every registered flight
func (c *Client) ListFlights(ctx context.Context) ([]models.FlightSummary, error) {
	var flights []models.FlightSummary
	if err := c.request(ctx, http.MethodGet, "/api/flights", nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// AddFlight registers a flight
func (c *Client) AddFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.AddFlightResponse, error) {
	var resp models.AddFlightResponse
	if err := c.request(ctx, http.MethodPost, "/api/flights", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFlight retrieves a single flight
func (c *Client) GetFlight(ctx context.Context, flightNumber int) (*models.FlightSummary, error) {
	var flight models.FlightSummary
	if err := c.request(ctx, http.MethodGet, flightPath(flightNumber), nil, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

// ListPassengers retrieves a flight manifest, most recent booking first
func (c *Client) ListPassengers(ctx context.Context, flightNumber int) ([]models.PassengerSummary, error) {
	var passengers []models.PassengerSummary
	if err := c.request(ctx, http.MethodGet, flightPath(flightNumber)+"/passengers", nil, &passengers); err != nil {
		return nil, err
	}
	return passengers, nil
}

// BookSeats books one seat per name
func (c *Client) BookSeats(ctx context.Context, flightNumber int, names []string) (*models.BookingConfirmation, error) {
	var confirmation models.BookingConfirmation
	body := models.BookSeatsRequest{PassengerNames: names}
	if err := c.request(ctx, http.MethodPost, flightPath(flightNumber)+"/bookings", body, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

// CancelSeat releases a passenger's seat
func (c *Client) CancelSeat(ctx context.Context, flightNumber, passengerID int) (*models.CancellationResult, error) {
	var result models.CancellationResult
	path := flightPath(flightNumber) + "/passengers/" + strconv.Itoa(passengerID)
	if err := c.request(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func flightPath(flightNumber int) string {
	return "/api/flights/" + strconv.Itoa(flightNumber)
}

// request performs an HTTP request and decodes the JSON response into result
func (c *Client) request(ctx context.Context, method, path string, body, result any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "flightctl/1.0.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var body models.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(data))}
}
