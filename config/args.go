package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrUsage is returned when the command line cannot be used.
var ErrUsage = errors.New("usage error")

// Usage is printed on stderr for missing or unrecognized arguments.
const Usage = " usage: \n" +
	"\t-ns [number of swaptions (should be > number of threads]\n" +
	"\t-sm [number of simulations]\n" +
	"\t-nt [number of threads]\n" +
	"\t-config [config file]\n" +
	"\t-progress\n" +
	"\t-serve [listen address]\n"

// Args holds what was given on the command line. Nil pointers mean the
// flag was absent and the configured value stands.
type Args struct {
	Swaptions  *int
	Trials     *int
	Workers    *int
	ConfigFile string
	Progress   bool
	Serve      string
}

// ParseArgs parses the arguments after the program name. An empty command
// line is an error. Unrecognized flags print the usage and are skipped.
func ParseArgs(args []string, stderr io.Writer) (Args, error) {
	var a Args
	if len(args) == 0 {
		fmt.Fprint(stderr, Usage)
		return a, fmt.Errorf("%w: no arguments", ErrUsage)
	}

	value := func(j int) (string, error) {
		if j+1 >= len(args) {
			fmt.Fprint(stderr, Usage)
			return "", fmt.Errorf("%w: %s needs a value", ErrUsage, args[j])
		}
		return args[j+1], nil
	}
	intValue := func(j int) (*int, error) {
		s, err := value(j)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprint(stderr, Usage)
			return nil, fmt.Errorf("%w: %s wants an integer, got %q", ErrUsage, args[j], s)
		}
		return &n, nil
	}

	for j := 0; j < len(args); j++ {
		var err error
		switch args[j] {
		case "-sm":
			a.Trials, err = intValue(j)
			j++
		case "-nt":
			a.Workers, err = intValue(j)
			j++
		case "-ns":
			a.Swaptions, err = intValue(j)
			j++
		case "-config":
			a.ConfigFile, err = value(j)
			j++
		case "-serve":
			a.Serve, err = value(j)
			j++
		case "-progress":
			a.Progress = true
		default:
			fmt.Fprint(stderr, Usage)
		}
		if err != nil {
			return a, err
		}
	}
	return a, nil
}
