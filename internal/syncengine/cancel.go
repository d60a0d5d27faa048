package syncengine

import (
	"context"
	"sync"
	"sync/atomic"
)

// Token identifies one in-flight fetch. Its context aborts the transport when
// the operation is superseded; Live is the mandatory check before any result
// is applied to engine state, so a completed-but-superseded response is
// dropped even when the transport ignored the abort.
type Token struct {
	ctx    context.Context
	cancel context.CancelFunc
	live   atomic.Bool
}

func (t *Token) Context() context.Context { return t.ctx }

func (t *Token) Live() bool { return t.live.Load() }

// Canceller owns at most one in-flight operation per engine. Beginning a new
// operation supersedes the previous one.
type Canceller struct {
	mu  sync.Mutex
	cur *Token
}

func NewCanceller() *Canceller {
	return &Canceller{}
}

// Begin cancels any active token and installs a fresh one derived from ctx.
func (c *Canceller) Begin(ctx context.Context) *Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cur != nil {
		c.cur.live.Store(false)
		c.cur.cancel()
	}

	tok := &Token{}
	tok.ctx, tok.cancel = context.WithCancel(ctx)
	tok.live.Store(true)
	c.cur = tok
	return tok
}

// CancelCurrent cancels the active token, if any. Used on teardown and
// explicit aborts.
func (c *Canceller) CancelCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cur != nil {
		c.cur.live.Store(false)
		c.cur.cancel()
		c.cur = nil
	}
}
