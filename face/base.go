package face

import "sync/atomic"

// baseFace carries the state shared by every socket-backed Face
// implementation: the want-write flag Poll consults, and the up/down
// hooks.
type baseFace struct {
	connected  atomic.Bool
	wantWrite  atomic.Bool
	onDownFunc func()
	onUpFunc   func()
}

func (b *baseFace) WantWrite(want bool) { b.wantWrite.Store(want) }
func (b *baseFace) IsConnected() bool   { return b.connected.Load() }

func (b *baseFace) OnDown(fn func()) { b.onDownFunc = fn }
func (b *baseFace) OnUp(fn func())   { b.onUpFunc = fn }

func (b *baseFace) markUp() {
	b.connected.Store(true)
	if b.onUpFunc != nil {
		b.onUpFunc()
	}
}

func (b *baseFace) markDown() {
	if !b.connected.Swap(false) {
		return
	}
	if b.onDownFunc != nil {
		b.onDownFunc()
	}
}
