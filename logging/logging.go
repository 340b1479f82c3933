// Package logging holds the global diagnostics switch of freud. By default
// nothing is logged. In Performance mode the accumulators report how long
// each call took and the memory in use, in Debug mode they also report the
// geometry they were called with.
package logging

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// Mode is global so that it doesn't have to be passed to every accumulator.
// It must not be changed while accumulators are running.
var (
	Mode   Flag = Nil
	Logger      = log.New(os.Stderr, "freud: ", log.LstdFlags)
	mu     sync.Mutex
)

// ParseFlag returns the flag named s. The empty string is Nil.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nil", "none", "off":
		return Nil, nil
	case "performance", "perf":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("logging: unknown mode %q", s)
}

func (f Flag) String() string {
	switch f {
	case Nil:
		return "nil"
	case Performance:
		return "performance"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// Printf logs the message only in Debug mode.
func Printf(format string, args ...interface{}) {
	if Mode < Debug {
		return
	}
	mu.Lock()
	Logger.Printf(format, args...)
	mu.Unlock()
}

// Track returns a function that, when called, logs the time elapsed since
// Track was called, and the memory usage. It does nothing unless Mode is
// Performance or Debug. Usage: defer logging.Track("name")()
func Track(name string) func() {
	if Mode < Performance {
		return func() {}
	}
	start := time.Now()
	return func() {
		mu.Lock()
		Logger.Printf("%s: %s; %s", name, time.Since(start), MemString())
		mu.Unlock()
	}
}

// MemString returns a string containing various statistics on the current
// memory usage.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
