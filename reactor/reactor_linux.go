//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7) implementation of the EventReactor, with an eventfd wake
// channel and the stream-class descriptor helpers.

package reactor

import (
	"encoding/binary"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-async/api"
)

// linuxReactor is an edge-triggered epoll-based event reactor.
type linuxReactor struct {
	epfd   int
	wakeFd int
}

// newPlatformReactor constructs the epoll instance plus its eventfd wake
// descriptor, pre-registered in the interest set.
func newPlatformReactor() (EventReactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	wakeFd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(epfd)
		return nil, err
	}
	ev := &unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakeFd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakeFd, ev); err != nil {
		unix.Close(wakeFd)
		unix.Close(epfd)
		return nil, err
	}
	return &linuxReactor{epfd: epfd, wakeFd: wakeFd}, nil
}

// Register adds fd to the epoll interest set. Edge-triggered: one event per
// readiness transition, so the monitor never spins on a descriptor the
// owning task has not drained yet.
func (r *linuxReactor) Register(fd uintptr) error {
	ev := &unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLRDHUP | unix.EPOLLET,
		Fd:     int32(fd),
	}
	return unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, int(fd), ev)
}

// Unregister removes fd from the epoll interest set.
func (r *linuxReactor) Unregister(fd uintptr) error {
	return unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, int(fd), nil)
}

// Wait blocks in epoll_wait and copies readiness events out, filtering the
// internal wake descriptor. EINTR and wake-only batches surface as a zero
// count with a nil error.
func (r *linuxReactor) Wait(events []Event) (int, error) {
	raw := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(r.epfd, raw, -1)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	out := 0
	for i := 0; i < n; i++ {
		fd := uintptr(raw[i].Fd)
		if fd == uintptr(r.wakeFd) {
			r.drainWake()
			continue
		}
		events[out] = Event{Fd: fd}
		out++
	}
	return out, nil
}

// Wake interrupts a concurrent Wait by bumping the eventfd counter.
func (r *linuxReactor) Wake() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	_, err := unix.Write(r.wakeFd, buf[:])
	if err == unix.EAGAIN {
		// Counter already pending; the wake is coalesced.
		return nil
	}
	return err
}

// Close releases the eventfd and the epoll instance.
func (r *linuxReactor) Close() error {
	unix.Close(r.wakeFd)
	return unix.Close(r.epfd)
}

func (r *linuxReactor) drainWake() {
	var buf [8]byte
	for {
		if _, err := unix.Read(r.wakeFd, buf[:]); err != nil {
			return
		}
	}
}

// checkStream validates that fd belongs to a stream-class descriptor.
// epoll supports sockets, pipes and character devices; regular files are
// always reported ready and must use the worker pool offload path instead.
func checkStream(fd uintptr) error {
	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return err
	}
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFSOCK, unix.S_IFIFO, unix.S_IFCHR:
		return nil
	default:
		return api.ErrUnsupportedDescriptor
	}
}

// setNonblock switches fd to non-blocking mode.
func setNonblock(fd uintptr) error {
	return unix.SetNonblock(int(fd), true)
}

// closeFD releases a stream descriptor.
func closeFD(fd uintptr) error {
	return unix.Close(int(fd))
}

// drainFD performs one non-blocking read. n == 0 with eof == false and a
// nil error means the read would block; a zero-length successful read is
// end-of-stream.
func drainFD(fd uintptr, p []byte) (int, bool, error) {
	n, err := unix.Read(int(fd), p)
	switch {
	case err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR:
		return 0, false, nil
	case err != nil:
		return 0, false, err
	case n == 0:
		return 0, true, nil
	default:
		return n, false, nil
	}
}
