package models

// BookSeatsRequest books one seat per passenger name, in order
type BookSeatsRequest struct {
	PassengerNames []string `json:"passengerNames"`
}

// BookedSeat is a seat assigned during a booking
type BookedSeat struct {
	PassengerID int    `json:"passengerId"`
	Name        string `json:"name"`
	SeatNumber  int    `json:"seatNumber"`
}

// BookingConfirmation is returned for a successful booking
type BookingConfirmation struct {
	FlightNumber     int          `json:"flightNumber"`
	ConfirmationCode string       `json:"confirmationCode"`
	Seats            []BookedSeat `json:"seats"`
	TotalCost        float64      `json:"totalCost"`
	AvailableSeats   int          `json:"availableSeats"`
}

// CancellationResult is returned for a successful cancellation
type CancellationResult struct {
	PassengerID    int `json:"passengerId"`
	FlightNumber   int `json:"flightNumber"`
	SeatNumber     int `json:"seatNumber"`
	AvailableSeats int `json:"availableSeats"`
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}
