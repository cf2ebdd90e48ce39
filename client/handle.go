// Package client implements the CCN client handle: Interest expression,
// interest filter registration, dispatch of inbound Interests and
// ContentObjects to reference-counted Closures, and the single-threaded
// event loop that drives it all from one poll suspension point.
package client

import (
	"fmt"

	"github.com/akaash-nigam/ccnx/face"
	"github.com/akaash-nigam/ccnx/log"
	"github.com/akaash-nigam/ccnx/nametable"
	"github.com/akaash-nigam/ccnx/wire"
)

// Codec is the wire-format seam: everything the Handle needs from a
// binary encoding, kept as an interface so wire's ccnb-lite grammar can
// be swapped for a different format without touching dispatch or
// scheduling.
type Codec interface {
	CheckNameBuf(buf []byte) error
	ParseInterest(msg []byte) (*wire.ComponentIndex, error)
	ParseContentObject(msg []byte) (*wire.ComponentIndex, error)
	BuildInterestFromEncodedName(rawName []byte, trailer []byte) []byte
	ExtractTemplate(template []byte) (components []byte, trailer []byte, err error)
}

// defaultCodec adapts the wire package's free functions to the Codec
// interface.
type defaultCodec struct{}

func (defaultCodec) CheckNameBuf(buf []byte) error { return wire.CheckNameBuf(buf) }
func (defaultCodec) ParseInterest(msg []byte) (*wire.ComponentIndex, error) {
	return wire.ParseInterest(msg)
}
func (defaultCodec) ParseContentObject(msg []byte) (*wire.ComponentIndex, error) {
	return wire.ParseContentObject(msg)
}
func (defaultCodec) BuildInterestFromEncodedName(rawName []byte, trailer []byte) []byte {
	return wire.BuildInterestFromEncodedName(rawName, trailer)
}
func (defaultCodec) ExtractTemplate(template []byte) ([]byte, []byte, error) {
	return wire.ExtractTemplate(template)
}

// DefaultCodec is the ccnb-lite codec used when NewHandle isn't given
// an explicit one.
var DefaultCodec Codec = defaultCodec{}

// Handle is a single connection to a local daemon: one stream socket,
// one inbound/outbound buffer pair, the expressed-interest and
// interest-filter tables, and the default handlers invoked last for
// every inbound message, after any more specific match.
type Handle struct {
	face face.Face

	codec  Codec
	logger *log.Logger

	interests       *nametable.Table[*expressedInterest]
	interestFilters *nametable.Table[*interestFilter]
	defaultInterestAction *Closure
	defaultContentAction  *Closure

	interestBuf []byte // unused: refreshInterest builds every Interest into a fresh buffer

	inbuf   []byte
	decoder wire.Decoder

	outbuf      []byte
	outbufIndex int

	err      error
	errLine  int
	verbose  bool
	debugLvl int
}

// Option configures a Handle at construction time.
type Option func(*Handle)

// WithCodec overrides the wire codec, the seam for swapping in a
// different wire format entirely.
func WithCodec(c Codec) Option {
	return func(h *Handle) { h.codec = c }
}

// WithFace overrides the transport instead of deriving one from
// ResolveAddress.
func WithFace(f face.Face) Option {
	return func(h *Handle) { h.face = f }
}

// WithLogger overrides the default logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Handle) { h.logger = l }
}

// NewHandle allocates a Handle, reading CCN_DEBUG the way ccn_create
// reads verbose_error. It does not connect; call Connect (or pass
// WithFace and call its Open yourself) to establish the transport.
func NewHandle(opts ...Option) *Handle {
	h := &Handle{
		codec:           DefaultCodec,
		logger:          log.New("client", log.LevelInfo),
		interests:       nametable.New[*expressedInterest](),
		interestFilters: nametable.New[*interestFilter](),
		verbose:         DebugEnabled(),
		debugLvl:        debugLevel(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Connect dials name (or the CCN_LOCAL_PORT-resolved default if name is
// empty) and opens the Handle's Face. If CCN_TAP is set and the Face is
// a *face.UnixFace, a tap sink is installed; other Face types get none.
func (h *Handle) Connect(name string) error {
	if h.face != nil && h.face.IsConnected() {
		return h.noteErr(ErrAlreadyInUse, 0)
	}
	addr := ResolveAddress(name)
	if h.face == nil {
		h.face = face.NewUnixFace(addr)
	}
	if err := h.face.Open(); err != nil {
		return h.noteErr(err, 0)
	}
	if prefix, ok := tapPrefix(); ok {
		if uf, ok := h.face.(*face.UnixFace); ok {
			if err := uf.WithTap(prefix, tapFlushInterval); err != nil {
				h.logger.Warn("unable to open CCN_TAP file", "prefix", prefix, "err", err)
			} else {
				h.logger.Info("CCN_TAP writing", "prefix", prefix)
			}
		}
	}
	h.logger.Info("connected", "face", h.face.String())
	return nil
}

// Disconnect tears down the transport and discards buffered I/O state,
// but not the interest/filter tables (Destroy handles those).
func (h *Handle) Disconnect() error {
	h.inbuf = nil
	h.outbuf = nil
	h.outbufIndex = 0
	if h.face == nil {
		return nil
	}
	err := h.face.Close()
	if err != nil {
		return h.noteErr(err, 0)
	}
	return nil
}

// Destroy disconnects, then releases every Closure referenced by the
// Handle's tables and default handlers, firing FINAL exactly once per
// Closure whose count reaches zero. Mirrors ccn_destroy.
func (h *Handle) Destroy() error {
	err := h.Disconnect()
	replaceHandler(h, &h.defaultInterestAction, nil)
	replaceHandler(h, &h.defaultContentAction, nil)

	var keys [][]byte
	h.interests.Range(func(key []byte, e *expressedInterest) bool {
		keys = append(keys, append([]byte(nil), key...))
		return true
	})
	for _, k := range keys {
		if e, ok := h.interests.Get(k); ok {
			replaceHandler(h, &e.action, nil)
			e.setTemplate(nil)
		}
	}

	keys = keys[:0]
	h.interestFilters.Range(func(key []byte, f *interestFilter) bool {
		keys = append(keys, append([]byte(nil), key...))
		return true
	})
	for _, k := range keys {
		if f, ok := h.interestFilters.Get(k); ok {
			replaceHandler(h, &f.action, nil)
		}
	}
	return err
}

// SetDefaultInterestHandler installs the Closure invoked last for every
// inbound Interest, after any matching interest filters; it sees
// CONSUMED_INTEREST if a filter already accepted the Interest.
func (h *Handle) SetDefaultInterestHandler(action *Closure) {
	replaceHandler(h, &h.defaultInterestAction, action)
}

// SetDefaultContentHandler installs the Closure consulted after every
// matching expressed interest has been notified of an inbound
// ContentObject.
func (h *Handle) SetDefaultContentHandler(action *Closure) {
	replaceHandler(h, &h.defaultContentAction, action)
}

// noteErr records err and the caller's line the way NOTE_ERR/NOTE_ERRNO
// does, logging verbosely when CCN_DEBUG is set, and returns err
// unchanged so call sites can `return h.noteErr(err, 0)`.
func (h *Handle) noteErr(err error, line int) error {
	h.err = err
	h.errLine = line
	if h.verbose {
		h.LogError("client", err, line)
	}
	return err
}

// LogError is the supplemented ccn_perror-equivalent diagnostic: when
// CCN_DEBUG is set, every error is reported with the component name,
// error value, source line and pid, routed through log/ instead of a
// bare fprintf.
func (h *Handle) LogError(component string, err error, line int) {
	h.logger.Error(fmt.Sprintf("%s: error", component), "err", err, "line", line, "pid", osGetpid())
}
