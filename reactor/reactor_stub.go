//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without a supported multiplexer. The
// runtime degrades to worker pool offload only.

package reactor

import "github.com/momentics/hioload-async/api"

func newPlatformReactor() (EventReactor, error) {
	return nil, api.ErrReactorUnavailable
}

func checkStream(fd uintptr) error {
	return api.ErrReactorUnavailable
}

func setNonblock(fd uintptr) error {
	return api.ErrReactorUnavailable
}

func drainFD(fd uintptr, p []byte) (int, bool, error) {
	return 0, false, api.ErrReactorUnavailable
}

func closeFD(fd uintptr) error {
	return api.ErrReactorUnavailable
}
