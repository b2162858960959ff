package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned for any mode outside sync, async and multi.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects how a batch of pings is executed.
type Strategy int

const (
	// Sequential pings one target after another on the calling goroutine.
	Sequential Strategy = iota + 1
	// Cooperative starts one goroutine per target and lets the runtime
	// park them on the network poller.
	Cooperative
	// MultiThread runs a fixed pool of workers, each pinned to an OS thread.
	MultiThread
)

// DefaultStrategy is used when no mode is given.
const DefaultStrategy = Cooperative

var strategyNames = map[Strategy]string{
	Sequential:  "sync",
	Cooperative: "async",
	MultiThread: "multi",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// ParseStrategy maps a mode selector ("sync", "async", "multi") to a Strategy.
func ParseStrategy(mode string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == mode {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want sync, async or multi)", ErrUnknownStrategy, mode)
}

// MarshalText lets a Strategy travel through JSON and viper as its mode name.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
