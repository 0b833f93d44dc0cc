//go:build !serial

package config

import (
	"errors"
	"fmt"
)

// MaxWorkers bounds the number of pricing goroutines.
const MaxWorkers = 1024

// ErrWorkers is returned for a worker count outside [1, MaxWorkers].
var ErrWorkers = errors.New("invalid worker count")

// CheckWorkers validates a worker count.
func CheckWorkers(n int) error {
	if n < 1 || n > MaxWorkers {
		return fmt.Errorf("%w: Number of threads must be between 1 and %d", ErrWorkers, MaxWorkers)
	}
	return nil
}
