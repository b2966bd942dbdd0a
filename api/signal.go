// File: api/signal.go
// Author: momentics <momentics@gmail.com>
//
// Completion signals: liveness hints emitted by workers and the reactor.

package api

import "strconv"

// SourceIO tags signals emitted by the reactor's monitor goroutine.
const SourceIO = "io"

// Signal is a liveness hint that some background progress occurred. It is
// not routed to a specific task: the executor re-polls the whole task graph
// on every signal, so spurious or coalesced signals are always safe.
type Signal struct {
	// Source identifies the emitter: "worker-N" or "io".
	Source string
}

// WorkerSource builds the source tag for worker id.
func WorkerSource(id int) string {
	return "worker-" + strconv.Itoa(id)
}
