package queue

import "errors"

// DefaultCapacity is the number of pending requests the queue holds when no capacity is given
const DefaultCapacity = 50

var (
	ErrQueueFull  = errors.New("booking queue is full")
	ErrQueueEmpty = errors.New("no booking requests in the queue")
)

// BookingRequest is a pending request for seats on one flight
type BookingRequest struct {
	FlightNumber int
	Seats        int
}

// Queue is a fixed-capacity FIFO ring of booking requests.
// head == -1 marks the empty queue; head and tail are then both unset.
type Queue struct {
	buf  []BookingRequest
	head int
	tail int
}

// New creates a queue holding at most capacity requests
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		buf:  make([]BookingRequest, capacity),
		head: -1,
		tail: -1,
	}
}

// Enqueue appends req at the tail
func (q *Queue) Enqueue(req BookingRequest) error {
	n := len(q.buf)
	if q.head != -1 && (q.tail+1)%n == q.head {
		return ErrQueueFull
	}
	q.tail = (q.tail + 1) % n
	q.buf[q.tail] = req
	if q.head == -1 {
		q.head = q.tail
	}
	return nil
}

// Dequeue removes and returns the request at the head
func (q *Queue) Dequeue() (BookingRequest, error) {
	if q.head == -1 {
		return BookingRequest{}, ErrQueueEmpty
	}
	req := q.buf[q.head]
	q.buf[q.head] = BookingRequest{}
	if q.head == q.tail {
		q.head, q.tail = -1, -1
	} else {
		q.head = (q.head + 1) % len(q.buf)
	}
	return req, nil
}

// Len returns the number of pending requests
func (q *Queue) Len() int {
	if q.head == -1 {
		return 0
	}
	n := len(q.buf)
	return (q.tail-q.head+n)%n + 1
}

// Cap returns the queue capacity
func (q *Queue) Cap() int {
	return len(q.buf)
}

// Empty reports whether no requests are pending
func (q *Queue) Empty() bool {
	return q.head == -1
}
