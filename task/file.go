// File: task/file.go
// Author: momentics <momentics@gmail.com>
//
// Regular-file reads via worker pool offload. The readiness multiplexer
// rejects regular files, so their blocking reads run on a pool worker.

package task

import (
	"os"

	"github.com/momentics/hioload-async/api"
)

// ReadFile returns a task that reads the whole regular file at path on a
// pool worker.
func ReadFile(s api.Submitter, path string) api.Task[[]byte] {
	return Blocking(s, func() ([]byte, error) {
		return os.ReadFile(path)
	})
}
