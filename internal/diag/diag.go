// Package diag reports unrecoverable allocator failures. The reporter must
// not allocate through the allocator it serves, so messages are written with
// a raw write to the error channel before the process exits.
package diag

import (
	"os"
	"unsafe"
)

// ExitStatus is the process exit code used after a fatal report.
const ExitStatus = 2

// Reporter receives fatal allocator failures. Implementations normally
// terminate the process; if Fatal returns, the caller treats the failing
// operation as having produced no memory.
type Reporter interface {
	Fatal(msg string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(msg string)

// Fatal calls f(msg).
func (f ReporterFunc) Fatal(msg string) { f(msg) }

const logFailedMsg = "logging failed\n"

// Stderr returns the default reporter: it writes msg to standard error and
// exits with ExitStatus.
func Stderr() Reporter {
	return &writeReporter{write: writeStderr, exit: os.Exit}
}

type writeReporter struct {
	write func(p []byte) (int, error)
	exit  func(code int)
}

func (r *writeReporter) Fatal(msg string) {
	if !writeAll(r.write, msg) {
		writeAll(r.write, logFailedMsg)
	}
	r.exit(ExitStatus)
}

// writeAll writes s without copying it into a new buffer. It reports false
// on any error or short write.
func writeAll(write func([]byte) (int, error), s string) bool {
	if len(s) == 0 {
		return true
	}
	p := unsafe.Slice(unsafe.StringData(s), len(s))
	n, err := write(p)
	return err == nil && n == len(p)
}
