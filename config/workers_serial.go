//go:build serial

package config

import (
	"errors"
	"fmt"
)

// MaxWorkers is 1 in the serial build.
const MaxWorkers = 1

// ErrWorkers is returned for any worker count other than 1.
var ErrWorkers = errors.New("invalid worker count")

// CheckWorkers validates a worker count.
func CheckWorkers(n int) error {
	if n != 1 {
		return fmt.Errorf("%w: Number of threads must be 1 (serial version)", ErrWorkers)
	}
	return nil
}
