package models

// FlightSummary is the public view of a registered flight
type FlightSummary struct {
	FlightNumber   int     `json:"flightNumber" yaml:"flightNumber"`
	Date           string  `json:"date" yaml:"date"`
	DepartureTime  string  `json:"departureTime" yaml:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime" yaml:"arrivalTime"`
	Source         string  `json:"source" yaml:"source"`
	Destination    string  `json:"destination" yaml:"destination"`
	TicketCost     float64 `json:"ticketCost" yaml:"ticketCost"`
	TotalSeats     int     `json:"totalSeats" yaml:"totalSeats"`
	AvailableSeats int     `json:"availableSeats" yaml:"availableSeats"`
}

// PassengerSummary is one row of a flight manifest
type PassengerSummary struct {
	PassengerID int    `json:"passengerId"`
	Name        string `json:"name"`
	SeatNumber  int    `json:"seatNumber"`
}

// CreateFlightRequest registers a new flight. Capacity is optional; zero means the configured default.
type CreateFlightRequest struct {
	FlightNumber  int     `json:"flightNumber" yaml:"flightNumber"`
	TicketCost    float64 `json:"ticketCost" yaml:"ticketCost"`
	Date          string  `json:"date" yaml:"date"`
	DepartureTime string  `json:"departureTime" yaml:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime" yaml:"arrivalTime"`
	Source        string  `json:"source" yaml:"source"`
	Destination   string  `json:"destination" yaml:"destination"`
	Capacity      int     `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// AddFlightResponse reports how the registry stored a new flight
type AddFlightResponse struct {
	Flight FlightSummary `json:"flight"`
	Result string        `json:"result"`
}
