// Package trace renders the replacement controller's per-episode trace
// line to the kernel console. Console logging here is plain fmt.Printf
// with no logging library, but the numbers are routed through
// golang.org/x/text/message so grouped thousands separators render
// correctly for large slot/page counts.
package trace

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

/// Record is one controller trace line: the free-frame count observed and
/// the threshold/batch in effect when the episode triggered.
type Record struct {
	Free      int
	Threshold int
	Batch     int
	Evicted   int
	Attempts  int
}

/// String renders the record the way MaybeSwap emits it to the kernel
/// console, e.g. "swap: free=96 threshold=100 batch=4 evicted=4/8".
func (r Record) String() string {
	return printer.Sprintf("swap: free=%d threshold=%d batch=%d evicted=%d/%d",
		r.Free, r.Threshold, r.Batch, r.Evicted, r.Attempts)
}

/// Emit writes rec to standard output, the kernel console tracing
/// convention.
func Emit(rec Record) {
	fmt.Println(rec.String())
}
