package mainfuncs

import (
	"errors"

	"github.com/banachtech/swaptions/data"
	"github.com/sourcegraph/conc"
)

// Range is a half-open interval of swaption indices.
type Range struct {
	Begin, End int
}

// Len returns the number of swaptions in the range.
func (r Range) Len() int {
	return r.End - r.Begin
}

// Partition splits n items into workers contiguous ranges of n/workers
// items. The last range absorbs the remainder.
func Partition(n, workers int) []Range {
	if workers < 1 {
		workers = 1
	}
	chunk := n / workers
	ranges := make([]Range, workers)
	for w := range ranges {
		ranges[w].Begin = w * chunk
		ranges[w].End = (w + 1) * chunk
		if w == workers-1 {
			ranges[w].End = n
		}
	}
	return ranges
}

// Dispatch prices the swaptions on workers goroutines, each taking one
// range of Partition and working through it in order. Every record gets
// its Result or its Err; a failing swaption does not stop the others.
// done, if not nil, is called after each swaption from the worker that
// priced it. Dispatch returns once all workers have finished, with the
// per-swaption errors joined.
func Dispatch(swaptions []data.Swaption, workers int, price PriceFunc, done func(id int)) error {
	var wg conc.WaitGroup
	for _, r := range Partition(len(swaptions), workers) {
		if r.Len() == 0 {
			continue
		}
		wg.Go(func() {
			for i := r.Begin; i < r.End; i++ {
				s := &swaptions[i]
				s.Result, s.Err = price(&s.Spec)
				if done != nil {
					done(s.Spec.ID)
				}
			}
		})
	}
	wg.Wait()

	var errs []error
	for i := range swaptions {
		if swaptions[i].Err != nil {
			errs = append(errs, swaptions[i].Err)
		}
	}
	return errors.Join(errs...)
}
