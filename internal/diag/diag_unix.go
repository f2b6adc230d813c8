//go:build unix

package diag

import "golang.org/x/sys/unix"

func writeStderr(p []byte) (int, error) {
	return unix.Write(unix.Stderr, p)
}
