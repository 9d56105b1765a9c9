package connserver

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edirooss/respkv/internal/command"
	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

// connection owns one accepted socket's read-decode-dispatch-encode-write
// loop (spec.md §4.6, C6). Grounded on the teacher's process.go one-shot
// done-channel/sync.Once teardown idiom: close is idempotent and safe to
// call from either the connection's own loop exit or the server's
// SHUTDOWN-driven cancellation.
type connection struct {
	id    string
	conn  net.Conn
	store *store.Store
	log   *zap.Logger

	dec *resp.Decoder
	enc *resp.Encoder

	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(c net.Conn, st *store.Store, log *zap.Logger) *connection {
	id := uuid.NewString()
	return &connection{
		id:    id,
		conn:  c,
		store: st,
		log:   log.Named("conn").With(zap.String("conn_id", id)),
		dec:   resp.NewDecoder(c),
		enc:   resp.NewEncoder(c),
		done:  make(chan struct{}),
	}
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// serve runs the request loop until the peer disconnects, a protocol error
// occurs, or a SHUTDOWN command is dispatched (reported via the return
// value so the caller can run the server-wide teardown sequence).
func (c *connection) serve(ctx context.Context) (shutdownRequested bool) {
	defer c.close()
	c.log.Debug("connection accepted")

	for {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		args, err := c.dec.ReadCommand()
		if err != nil {
			c.logReadTermination(err)
			return false
		}
		if len(args) == 0 {
			continue // blank inline line; nothing to dispatch
		}

		out := c.dispatch(ctx, args)
		if out.Shutdown {
			return true
		}
		if out.NoReply {
			continue
		}

		if err := c.enc.WriteFlush(out.Reply); err != nil {
			c.log.Debug("write failed, closing connection", zap.Error(err))
			return false
		}
	}
}

func (c *connection) logReadTermination(err error) {
	switch {
	case errors.Is(err, io.EOF):
		c.log.Debug("peer closed connection")
	case resp.IsProtocolError(err):
		c.log.Warn("protocol error, closing connection", zap.Error(err))
	default:
		c.log.Debug("read error, closing connection", zap.Error(err))
	}
}

// dispatch runs one command. For BLPOP specifically it races the store
// call against a background watcher for peer disconnect, since the read
// loop above is itself suspended for the duration of a blocking command
// and would otherwise never observe a reset socket (spec.md §4.6:
// "a peer close wakes and discards the waiter without corrupting the
// queue").
func (c *connection) dispatch(ctx context.Context, args [][]byte) command.Outcome {
	if !strings.EqualFold(string(args[0]), "BLPOP") {
		return command.Dispatch(ctx, c.store, args)
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	defer c.conn.SetReadDeadline(time.Time{})

	go c.watchPeerClose(watchCtx, cancelWatch)
	return command.Dispatch(watchCtx, c.store, args)
}

// watchPeerClose polls the raw socket for a close/reset while the main
// loop is parked inside a blocking command. No further client writes are
// expected while a BLPOP reply is outstanding, so stealing a byte here (if
// the client misbehaves) is an acceptable simplification; its only job is
// detecting disconnect promptly enough to release the waiter.
func (c *connection) watchPeerClose(ctx context.Context, cancel context.CancelFunc) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
		n, err := c.conn.Read(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			cancel()
			return
		}
		if n > 0 {
			cancel()
			return
		}
	}
}
