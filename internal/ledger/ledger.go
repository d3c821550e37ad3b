package ledger

// Passenger is one booked seat on a flight
type Passenger struct {
	ID         int
	Name       string
	SeatNumber int
}

// Ledger holds the passengers of a single flight.
// Entries are stored oldest first; the head of the ledger is the last element.
type Ledger struct {
	entries []Passenger
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{}
}

// InsertFront makes p the new head of the ledger
func (l *Ledger) InsertFront(p Passenger) {
	l.entries = append(l.entries, p)
}

// RemoveByID removes the first passenger with the given id, scanning from the head.
func (l *Ledger) RemoveByID(id int) (Passenger, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Passenger{}, false
	}
	p := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return p, true
}

// Find returns the first passenger with the given id, scanning from the head.
func (l *Ledger) Find(id int) (Passenger, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Passenger{}, false
	}
	return l.entries[i], true
}

// SeatTaken reports whether any passenger holds seat
func (l *Ledger) SeatTaken(seat int) bool {
	for _, p := range l.entries {
		if p.SeatNumber == seat {
			return true
		}
	}
	return false
}

// All returns a copy of the ledger in head-to-tail (most recently booked first) order
func (l *Ledger) All() []Passenger {
	out := make([]Passenger, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Len returns the number of passengers
func (l *Ledger) Len() int {
	return len(l.entries)
}

func (l *Ledger) indexOf(id int) int {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}
