package face

import (
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// TCPFace reaches a daemon over loopback TCP for setups where a Unix
// socket isn't reachable from the caller. It dials with net.Dial for
// address resolution, then drops to the raw fd (via SyscallConn) to get
// the same non-blocking Read/Write/Poll discipline UnixFace has, since
// net.Conn itself exposes neither.
type TCPFace struct {
	baseFace
	network string // "tcp", "tcp4", or "tcp6"
	addr    string
	conn    *net.TCPConn
	rawConn syscall.RawConn
	fd      int
}

// NewTCPFace returns a TCPFace that will dial addr over network on Open.
func NewTCPFace(network, addr string) *TCPFace {
	return &TCPFace{network: network, addr: addr, fd: -1}
}

func (f *TCPFace) Open() error {
	if f.fd != -1 {
		return fmt.Errorf("face: %s already open", f.String())
	}
	conn, err := net.Dial(f.network, f.addr)
	if err != nil {
		return fmt.Errorf("face: dial %s: %w", f.addr, err)
	}
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return fmt.Errorf("face: %s did not yield a TCP connection", f.addr)
	}
	raw, err := tc.SyscallConn()
	if err != nil {
		_ = tc.Close()
		return fmt.Errorf("face: syscall conn: %w", err)
	}
	var setErr error
	var fd int
	err = raw.Control(func(sysfd uintptr) {
		fd = int(sysfd)
		setErr = unix.SetNonblock(fd, true)
	})
	if err != nil {
		_ = tc.Close()
		return fmt.Errorf("face: control: %w", err)
	}
	if setErr != nil {
		_ = tc.Close()
		return fmt.Errorf("face: set nonblock: %w", setErr)
	}
	f.conn = tc
	f.rawConn = raw
	f.fd = fd
	f.markUp()
	return nil
}

func (f *TCPFace) Close() error {
	if f.fd == -1 {
		return nil
	}
	err := f.conn.Close()
	f.fd = -1
	f.markDown()
	if err != nil {
		return fmt.Errorf("face: close: %w", err)
	}
	return nil
}

// Read and Write bypass net.Conn's Read/Write entirely and go straight
// to the raw fd: Go's net package hides O_NONBLOCK behind its own
// netpoller and parks the calling goroutine instead of returning
// EAGAIN, which would silently reintroduce blocking into a model with
// no internal goroutines.
func (f *TCPFace) Read(buf []byte) (int, error) {
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

func (f *TCPFace) Write(buf []byte) (int, error) {
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
	return n, nil
}

func (f *TCPFace) Poll(timeoutMs int) (PollEvents, error) {
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
	r := fds[0].Revents
	return PollEvents{
		Readable: r&unix.POLLIN != 0,
		Writable: r&unix.POLLOUT != 0,
	}, nil
}

func (f *TCPFace) String() string {
	return fmt.Sprintf("%s:%s", f.network, f.addr)
}
