package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSeatsBooked   MessageType = "seats_booked"
	MessageTypeSeatCancelled MessageType = "seat_cancelled"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// SeatUpdate represents a seat status change
type SeatUpdate struct {
	SeatNumber  int    `json:"seatNumber"`
	PassengerID int    `json:"passengerId"`
	Status      string `json:"status"` // booked, available
}

// Message represents a WebSocket message
type Message struct {
	Type           MessageType  `json:"type"`
	FlightNumber   int          `json:"flightNumber"`
	Seats          []SeatUpdate `json:"seats,omitempty"`
	AvailableSeats int          `json:"availableSeats"`
	Timestamp      int64        `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	id           uuid.UUID
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	flightNumber int
}

// Hub fans seat changes out to the clients watching each flight.
// It implements service.Notifier.
type Hub struct {
	clients    map[int]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		clients:    make(map[int]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run starts the hub's main loop and returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for flight, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, flight)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightNumber] == nil {
				h.clients[client.flightNumber] = make(map[*Client]bool)
			}
			h.clients[client.flightNumber][client] = true
			h.logger.Debug("WebSocket client registered", "flightNumber", client.flightNumber, "client", client.id, "total", len(h.clients[client.flightNumber]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("WebSocket message marshal failed", "error", err)
				continue
			}

			h.mu.Lock()
			clients := h.clients[message.FlightNumber]
			h.logger.Debug("WebSocket broadcast", "type", message.Type, "flightNumber", message.FlightNumber, "clients", len(clients))
			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove drops a client; h.mu must be held
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.flightNumber]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	h.logger.Debug("WebSocket client unregistered", "flightNumber", client.flightNumber, "client", client.id, "remaining", len(clients))
	if len(clients) == 0 {
		delete(h.clients, client.flightNumber)
	}
}

// publish queues msg without blocking the caller; messages are dropped when the buffer is full
func (h *Hub) publish(msg *Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("WebSocket broadcast buffer full, message dropped", "type", msg.Type, "flightNumber", msg.FlightNumber)
	}
}

// SeatsBooked broadcasts newly booked seats to all clients watching a flight
func (h *Hub) SeatsBooked(flightNumber int, seats []models.BookedSeat, available int) {
	updates := make([]SeatUpdate, len(seats))
	for i, s := range seats {
		updates[i] = SeatUpdate{SeatNumber: s.SeatNumber, PassengerID: s.PassengerID, Status: "booked"}
	}
	h.publish(&Message{
		Type:           MessageTypeSeatsBooked,
		FlightNumber:   flightNumber,
		Seats:          updates,
		AvailableSeats: available,
		Timestamp:      time.Now().UnixMilli(),
	})
}

// SeatCancelled broadcasts a released seat to all clients watching a flight
func (h *Hub) SeatCancelled(flightNumber int, passengerID, seatNumber, available int) {
	h.publish(&Message{
		Type:           MessageTypeSeatCancelled,
		FlightNumber:   flightNumber,
		Seats:          []SeatUpdate{{SeatNumber: seatNumber, PassengerID: passengerID, Status: "available"}},
		AvailableSeats: available,
		Timestamp:      time.Now().UnixMilli(),
	})
}

// GetClientCount returns the number of clients watching a flight
func (h *Hub) GetClientCount(flightNumber int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightNumber])
}

// HandleWebSocket handles GET /api/flights/{number}/ws
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	flightNumber, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		http.Error(w, "Invalid flight number", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		id:           uuid.New(),
		hub:          h,
		conn:         conn,
		send:         make(chan []byte, sendBuffer),
		flightNumber: flightNumber,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames and unregisters the client when the connection closes
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
