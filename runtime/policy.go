package runtime

import (
	"fmt"
	"sync/atomic"
)

// checksEnabled is the single switch for the validation layer. Checked mode
// (the default) reports integer range violations, out-of-bounds positional
// access, missing const dict keys, and mismatched Unbox assertions as
// Faults. Unchecked mode trusts that the compiler only emits accesses it
// has already proven safe and skips the validation.
var checksEnabled atomic.Bool

func init() {
	checksEnabled.Store(true)
}

// SetChecks selects the validation policy for the whole runtime. Intended
// to be flipped once at startup, before any generated code runs.
func SetChecks(on bool) {
	checksEnabled.Store(on)
}

// ChecksEnabled reports whether checked mode is active.
func ChecksEnabled() bool {
	return checksEnabled.Load()
}

// Fault is panicked on a contract violation: a checked-mode validation
// failure, or using a Value as a payload kind it does not hold. Faults are
// not recoverable errors; generated code never catches them.
type Fault struct {
	Op  string
	Msg string
}

func (f *Fault) Error() string {
	return f.Op + ": " + f.Msg
}

func fail(op, format string, args ...any) {
	panic(&Fault{Op: op, Msg: fmt.Sprintf(format, args...)})
}
