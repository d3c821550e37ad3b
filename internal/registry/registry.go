package registry

import (
	"fmt"

	"github.com/cx-tal-miterani/flight-booking-system/internal/ledger"
)

// DefaultBucketCount is the number of hash buckets when none is given
const DefaultBucketCount = 20

// Flight is a registry entry. Passengers is owned by the flight.
type Flight struct {
	Number         int
	Capacity       int
	AvailableSeats int
	TicketCost     float64
	Date           string
	DepartureTime  string
	ArrivalTime    string
	Source         string
	Destination    string
	Passengers     *ledger.Ledger
}

// DuplicatePolicy decides what Add does with a flight number that is already registered
type DuplicatePolicy string

const (
	// DuplicateShadow keeps both entries; Find returns the newest
	DuplicateShadow DuplicatePolicy = "shadow"
	// DuplicateReject leaves the registry unchanged
	DuplicateReject DuplicatePolicy = "reject"
	// DuplicateReplace drops the earlier entries
	DuplicateReplace DuplicatePolicy = "replace"
)

// ParseDuplicatePolicy maps a config value to a DuplicatePolicy
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case DuplicateShadow, DuplicateReject, DuplicateReplace:
		return p, nil
	case "":
		return DuplicateShadow, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// AddResult tags the outcome of Add
type AddResult int

const (
	Inserted AddResult = iota
	Shadowed
	Replaced
	Rejected
)

func (r AddResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Shadowed:
		return "shadowed"
	case Replaced:
		return "replaced"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("AddResult(%d)", int(r))
	}
}

// Registry indexes flights by number in a fixed set of chained buckets.
// Each chain is stored oldest first, so the chain head is its last element.
type Registry struct {
	buckets [][]*Flight
	policy  DuplicatePolicy
	size    int
}

// New creates a registry with bucketCount buckets
func New(bucketCount int, policy DuplicatePolicy) *Registry {
	if bucketCount <= 0 {
		bucketCount = DefaultBucketCount
	}
	if policy == "" {
		policy = DuplicateShadow
	}
	return &Registry{
		buckets: make([][]*Flight, bucketCount),
		policy:  policy,
	}
}

// Hash returns the bucket index for a flight number
func (r *Registry) Hash(number int) int {
	b := number % len(r.buckets)
	if b < 0 {
		b += len(r.buckets)
	}
	return b
}

// Add inserts f at the head of its bucket chain, subject to the duplicate policy
func (r *Registry) Add(f *Flight) AddResult {
	b := r.Hash(f.Number)
	chain := r.buckets[b]

	exists := false
	for _, existing := range chain {
		if existing.Number == f.Number {
			exists = true
			break
		}
	}

	result := Inserted
	if exists {
		switch r.policy {
		case DuplicateReject:
			return Rejected
		case DuplicateReplace:
			kept := chain[:0]
			for _, existing := range chain {
				if existing.Number != f.Number {
					kept = append(kept, existing)
				}
			}
			r.size -= len(chain) - len(kept)
			chain = kept
			result = Replaced
		default:
			result = Shadowed
		}
	}

	r.buckets[b] = append(chain, f)
	r.size++
	return result
}

// Find returns the most recently added flight with the given number
func (r *Registry) Find(number int) (*Flight, bool) {
	chain := r.buckets[r.Hash(number)]
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Number == number {
			return chain[i], true
		}
	}
	return nil, false
}

// All returns every entry in bucket order, newest first within a bucket.
// The order follows the index layout and is not sorted by flight number.
func (r *Registry) All() []*Flight {
	out := make([]*Flight, 0, r.size)
	for b := range r.buckets {
		out = append(out, r.Chain(b)...)
	}
	return out
}

// Chain returns the entries of bucket b, newest first
func (r *Registry) Chain(b int) []*Flight {
	chain := r.buckets[b]
	out := make([]*Flight, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i])
	}
	return out
}

// Len returns the number of entries, shadowed ones included
func (r *Registry) Len() int {
	return r.size
}

// BucketCount returns the number of buckets
func (r *Registry) BucketCount() int {
	return len(r.buckets)
}

// Policy returns the duplicate policy in effect
func (r *Registry) Policy() DuplicatePolicy {
	return r.policy
}
