package service

import "context"

// NameSource supplies passenger names during a booking. seat is the 1-based position within the request.
type NameSource interface {
	NextName(ctx context.Context, seat int) (string, error)
}

// NameList supplies names from a fixed list
type NameList []string

func (l NameList) NextName(ctx context.Context, seat int) (string, error) {
	if seat < 1 || seat > len(l) {
		return "", ErrNameRequired
	}
	return l[seat-1], nil
}

// NameFunc adapts a function to NameSource
type NameFunc func(ctx context.Context, seat int) (string, error)

func (f NameFunc) NextName(ctx context.Context, seat int) (string, error) {
	return f(ctx, seat)
}
