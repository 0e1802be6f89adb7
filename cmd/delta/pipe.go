package main

import (
	"errors"
	"io/fs"
	"syscall"
)

// isBrokenPipe reports whether err is (or wraps) EPIPE, the error the
// painter's sink returns once a downstream pager has exited (spec §5
// "Cancellation": the run returns cleanly with whatever was already
// flushed).
func isBrokenPipe(err error) bool {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return errors.Is(err, syscall.EPIPE)
}
