package face

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketFace tunnels the same byte stream over a WebSocket
// connection to a daemon's management endpoint, for browser or
// cross-host debugging sessions that cannot reach a Unix socket
// directly. gorilla/websocket's Conn has no non-blocking Read, so Open
// starts one readLoop goroutine that reads whole binary frames for the
// life of the connection, appends them to a pending byte buffer and
// signals the poll loop through a one-slot channel; the client's event
// loop still drives everything else synchronously.
type WebSocketFace struct {
	baseFace
	url string
	conn *websocket.Conn

	mu      sync.Mutex
	pending bytes.Buffer
	readErr error
	readCh  chan struct{}
}

// NewWebSocketFace returns a WebSocketFace that will dial url on Open.
func NewWebSocketFace(url string) *WebSocketFace {
	return &WebSocketFace{url: url}
}

func (f *WebSocketFace) Open() error {
	if f.conn != nil {
		return fmt.Errorf("face: %s already open", f.String())
	}
	conn, _, err := websocket.DefaultDialer.Dial(f.url, nil)
	if err != nil {
		return fmt.Errorf("face: dial %s: %w", f.url, err)
	}
	f.conn = conn
	f.readCh = make(chan struct{}, 1)
	go f.readLoop()
	f.markUp()
	return nil
}

// readLoop is the one place this module runs a background goroutine: it
// exists solely to turn gorilla/websocket's blocking ReadMessage into
// buffered bytes Read can drain without blocking, and never touches
// dispatch state directly.
func (f *WebSocketFace) readLoop() {
	for {
		_, data, err := f.conn.ReadMessage()
		f.mu.Lock()
		if err != nil {
			f.readErr = err
			f.mu.Unlock()
			select {
			case f.readCh <- struct{}{}:
			default:
			}
			return
		}
		f.pending.Write(data)
		f.mu.Unlock()
		select {
		case f.readCh <- struct{}{}:
		default:
		}
	}
}

func (f *WebSocketFace) Close() error {
	if f.conn == nil {
		return nil
	}
	err := f.conn.Close()
	f.conn = nil
	f.markDown()
	if err != nil {
		return fmt.Errorf("face: close: %w", err)
	}
	return nil
}

func (f *WebSocketFace) Read(buf []byte) (int, error) {
	if f.conn == nil {
		return 0, ErrClosed
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending.Len() > 0 {
		return f.pending.Read(buf)
	}
	if f.readErr != nil {
		f.markDown()
		return 0, ErrClosed
	}
	return 0, ErrWouldBlock
}

func (f *WebSocketFace) Write(buf []byte) (int, error) {
	if f.conn == nil {
		return 0, ErrClosed
	}
	if err := f.conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
		f.markDown()
		return 0, fmt.Errorf("face: write: %w", err)
	}
	return len(buf), nil
}

// Poll drains the readLoop's notification channel with the requested
// timeout, reporting readability once bytes (or a terminal read error)
// are pending. Writability is reported whenever WantWrite is set:
// gorilla/websocket's Write path has no non-blocking backpressure
// signal to poll for, the way a raw fd does.
func (f *WebSocketFace) Poll(timeoutMs int) (PollEvents, error) {
	if f.conn == nil {
		return PollEvents{}, ErrClosed
	}
	f.mu.Lock()
	ready := f.pending.Len() > 0 || f.readErr != nil
	f.mu.Unlock()
	if !ready {
		var timer <-chan time.Time
		if timeoutMs >= 0 {
			t := time.NewTimer(time.Duration(timeoutMs) * time.Millisecond)
			defer t.Stop()
			timer = t.C
		}
		select {
		case <-f.readCh:
		case <-timer:
		}
	}
	f.mu.Lock()
	readable := f.pending.Len() > 0 || f.readErr != nil
	f.mu.Unlock()
	return PollEvents{Readable: readable, Writable: f.wantWrite.Load()}, nil
}

func (f *WebSocketFace) String() string {
	return fmt.Sprintf("ws:%s", f.url)
}
