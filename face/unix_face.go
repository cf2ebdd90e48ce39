package face

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// UnixFace is the primary transport: an AF_UNIX SOCK_STREAM socket set
// O_NONBLOCK immediately after connect, driven by unix.Poll directly on
// the raw fd. net.Conn isn't used here because it has no non-blocking
// Read/Write contract and no way to hand its fd to a raw poll() call
// without reaching past the interface anyway — the same reasoning the
// teacher's non-wasm raw-syscall path applies to socket options
// net doesn't expose.
type UnixFace struct {
	baseFace
	path string
	fd   int
	tap  *tapWriter
}

// NewUnixFace returns a UnixFace that will dial path on Open.
func NewUnixFace(path string) *UnixFace {
	return &UnixFace{path: path, fd: -1}
}

// WithTap attaches a tap capture sink, opened with the given flush
// interval, so every Write is also mirrored to prefix's generated file.
func (f *UnixFace) WithTap(prefix string, flushInterval time.Duration) error {
	name := tapFileName(prefix, unixGetpid(), time.Now())
	w, err := openTapWriter(name, flushInterval)
	if err != nil {
		return err
	}
	f.tap = w
	return nil
}

func unixGetpid() int { return unix.Getpid() }

func (f *UnixFace) Open() error {
	if f.fd != -1 {
		return fmt.Errorf("face: %s already open", f.String())
	}
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return fmt.Errorf("face: socket: %w", err)
	}
	addr := &unix.SockaddrUnix{Name: f.path}
	if err := unix.Connect(fd, addr); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("face: connect %s: %w", f.path, err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("face: set nonblock: %w", err)
	}
	f.fd = fd
	f.markUp()
	return nil
}

func (f *UnixFace) Close() error {
	if f.fd == -1 {
		return nil
	}
	err := unix.Close(f.fd)
	f.fd = -1
	f.markDown()
	if f.tap != nil {
		_ = f.tap.Close()
	}
	if err != nil {
		return fmt.Errorf("face: close: %w", err)
	}
	return nil
}

func (f *UnixFace) Read(buf []byte) (int, error) {
	if f.fd == -1 {
		return 0, ErrClosed
	}
	n, err := unix.Read(f.fd, buf)
	if err != nil {
		if err == unix.EAGAIN {
			return 0, ErrWouldBlock
		}
		f.markDown()
		return 0, fmt.Errorf("face: read: %w", err)
	}
	if n == 0 {
		f.markDown()
		return 0, ErrClosed
	}
	return n, nil
}

func (f *UnixFace) Write(buf []byte) (int, error) {
	if f.fd == -1 {
		return 0, ErrClosed
	}
	n, err := unix.Write(f.fd, buf)
	if err != nil {
		if err == unix.EAGAIN {
			return 0, ErrWouldBlock
		}
		f.markDown()
		return 0, fmt.Errorf("face: write: %w", err)
	}
	if n > 0 {
		f.tap.Write(buf[:n])
	}
	return n, nil
}

func (f *UnixFace) Poll(timeoutMs int) (PollEvents, error) {
	if f.fd == -1 {
		return PollEvents{}, ErrClosed
	}
	events := int16(unix.POLLIN)
	if f.wantWrite.Load() {
		events |= unix.POLLOUT
	}
	fds := []unix.PollFd{{Fd: int32(f.fd), Events: events}}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return PollEvents{}, nil
		}
		return PollEvents{}, fmt.Errorf("face: poll: %w", err)
	}
	if n == 0 {
		return PollEvents{}, nil
	}
	// Bitwise AND against the watched mask, not OR: an earlier version
	// of this check used | and so treated revents as always non-zero,
	// unconditionally firing both the read and write paths on every
	// wakeup regardless of what actually became ready.
	r := fds[0].Revents
	return PollEvents{
		Readable: r&unix.POLLIN != 0,
		Writable: r&unix.POLLOUT != 0,
	}, nil
}

func (f *UnixFace) String() string {
	return fmt.Sprintf("unix:%s", f.path)
}
