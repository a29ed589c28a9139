package main

import (
	"fmt"
	"os"

	"fstrlit/internal/driver"
)

// printTimings writes the phase table to stderr when --timings is set.
func printTimings(st *runSettings, timer *driver.Timer) {
	if !st.timings || timer == nil {
		return
	}
	fmt.Fprint(os.Stderr, timer.Summary())
}
