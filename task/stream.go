// File: task/stream.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reactor-backed stream read task.

package task

import (
	"bytes"

	"github.com/momentics/hioload-async/api"
)

const drainChunk = 4096

// streamTask reads a watched stream descriptor to end-of-stream.
//
// First poll: register the descriptor with the reactor, return Pending.
// Every later poll: drain all currently available bytes into the growable
// buffer (partial reads accumulate across polls), then either return
// Pending, or on end-of-stream unwatch, close the descriptor and return the
// full buffer exactly once.
type streamTask struct {
	watcher api.Watcher
	fd      uintptr
	buf     bytes.Buffer
	chunk   [drainChunk]byte
	started bool
	done    bool
	result  api.Poll[[]byte]
}

// Stream returns a task that reads the stream-class descriptor fd to EOF
// through the watcher's readiness multiplexer. Regular files are rejected
// at first poll with api.ErrUnsupportedDescriptor; read them with ReadFile
// instead.
func Stream(w api.Watcher, fd uintptr) api.Task[[]byte] {
	return &streamTask{watcher: w, fd: fd}
}

func (t *streamTask) Poll() api.Poll[[]byte] {
	if t.done {
		return t.result
	}
	if !t.started {
		t.started = true
		if err := t.watcher.Watch(t.fd); err != nil {
			return t.complete(api.Fail[[]byte](err))
		}
		return api.Pending[[]byte]()
	}
	for {
		n, eof, err := t.watcher.Drain(t.fd, t.chunk[:])
		if n > 0 {
			t.buf.Write(t.chunk[:n])
			continue
		}
		if err != nil {
			t.teardown()
			return t.complete(api.Fail[[]byte](err))
		}
		if eof {
			t.teardown()
			return t.complete(api.Ready(t.buf.Bytes()))
		}
		// Would block: everything currently available has been drained.
		return api.Pending[[]byte]()
	}
}

// Cancel deregisters and closes the descriptor so no completion signal
// arrives for a task nobody polls anymore.
func (t *streamTask) Cancel() {
	if t.done {
		return
	}
	if t.started {
		t.teardown()
	}
	t.complete(api.Fail[[]byte](api.ErrCancelled))
}

func (t *streamTask) teardown() {
	_ = t.watcher.Unwatch(t.fd)
	_ = t.watcher.CloseFD(t.fd)
}

func (t *streamTask) complete(p api.Poll[[]byte]) api.Poll[[]byte] {
	t.done = true
	t.result = p
	return p
}
