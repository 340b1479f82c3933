/*
 * options.go, part of freud.
 *
 * Copyright 2021 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package freud

import (
	"runtime"

	"github.com/dgravesa/go-parallel/parallel"
)

// Options contains the parameters that control how the accumulators
// distribute their work.
type Options struct {
	workers int
}

// DefaultOptions returns an Options with the default options: one worker per logical CPU.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.workers = runtime.NumCPU()
	return ret
}

// Workers returns the current number of workers (goroutines) used in
// the parallel loops and sets it, if a valid (positive) value is given.
func (o *Options) Workers(workers ...int) int {
	ret := o.workers
	if len(workers) > 0 && workers[0] > 0 {
		o.workers = workers[0]
	}
	return ret
}

// For runs body(i, worker) for every i in [0,n), distributing the indexes among the
// workers. worker is in [0, o.Workers()) and the same worker never runs two bodies at the
// same time, so it can be used to select storage private to that worker.
// For blocks until all the work is done.
func (o *Options) For(n int, body func(i, worker int)) {
	if n <= 0 {
		return
	}
	w := o.workers
	if w <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			body(i, 0)
		}
		return
	}
	if w > n {
		w = n
	}
	parallel.WithNumGoroutines(w).For(n, body)
}

// PickOptions returns the first non-nil element of opts, or
// new default options if there is none. It is meant for functions
// that take variadic options.
func PickOptions(opts ...*Options) *Options {
	for _, o := range opts {
		if o != nil {
			return o
		}
	}
	return DefaultOptions()
}
