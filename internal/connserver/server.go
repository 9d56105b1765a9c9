// Package connserver implements the TCP accept loop and per-connection
// lifecycle (spec.md C6/C7): a RESP-over-TCP listener whose connection
// tasks are supervised the way the teacher's process_manager.go supervises
// its managed processes, using golang.org/x/sync/errgroup in place of the
// teacher's hand-rolled WaitGroup+map bookkeeping.
package connserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/edirooss/respkv/internal/store"
)

// errShutdownRequested is returned by a connection task when its client
// issued SHUTDOWN, signaling errgroup to cancel every sibling task.
var errShutdownRequested = errors.New("connserver: shutdown requested")

// Server accepts connections on a single TCP address and dispatches each
// one to the command package against a shared Store.
type Server struct {
	addr  string
	store *store.Store
	log   *zap.Logger

	mu    sync.Mutex
	conns map[*connection]context.CancelFunc
}

// New constructs a Server bound to addr (e.g. ":6379"). The store is
// shared across every connection; the caller owns its lifetime.
func New(addr string, st *store.Store, log *zap.Logger) *Server {
	return &Server{
		addr:  addr,
		store: st,
		log:   log.Named("connserver"),
		conns: make(map[*connection]context.CancelFunc),
	}
}

// Run listens and serves until ctx is canceled (e.g. by SIGINT) or a
// client issues SHUTDOWN. It returns nil on either clean shutdown path,
// or a non-nil error if the listener could not be opened or the accept
// loop failed for a reason other than shutdown.
func (srv *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", srv.addr)
	if err != nil {
		return fmt.Errorf("connserver: listen %s: %w", srv.addr, err)
	}
	srv.log.Info("listening", zap.String("addr", srv.addr))

	g, gctx := errgroup.WithContext(ctx)

	// Teardown watcher: fires on parent cancellation (SIGINT) or on any
	// sibling task returning an error (including errShutdownRequested),
	// since errgroup cancels gctx as soon as one task fails.
	g.Go(func() error {
		<-gctx.Done()
		srv.store.Shutdown()
		srv.cancelConns()
		return ln.Close()
	})

	g.Go(func() error {
		return srv.acceptLoop(gctx, ln, g)
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, errShutdownRequested) {
		return err
	}
	srv.log.Info("shutdown complete")
	return nil
}

func (srv *Server) acceptLoop(gctx context.Context, ln net.Listener, g *errgroup.Group) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if gctx.Err() != nil {
				return nil // teardown watcher closed the listener; expected
			}
			return fmt.Errorf("connserver: accept: %w", err)
		}

		connCtx, cancel := context.WithCancel(gctx)
		c := newConnection(conn, srv.store, srv.log)
		srv.addConn(c, cancel)

		g.Go(func() error {
			defer cancel()
			defer srv.removeConn(c)
			if c.serve(connCtx) {
				return errShutdownRequested
			}
			return nil
		})
	}
}

func (srv *Server) addConn(c *connection, cancel context.CancelFunc) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.conns[c] = cancel
}

func (srv *Server) removeConn(c *connection) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	delete(srv.conns, c)
}

// cancelConns cancels and closes every still-registered connection. The
// connection whose SHUTDOWN command triggered teardown has already
// returned from serve and closed itself by the time this runs, so this
// only reaches the remaining peers (spec.md §4.7: wake waiters, then
// cancel sibling connection tasks, then stop accepting). Canceling the
// context alone doesn't unblock a sibling parked in a blocking read of
// ReadCommand — nothing observes ctx there — so each connection is also
// closed directly, which unblocks that read with an error and lets its
// task return.
func (srv *Server) cancelConns() {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	for c, cancel := range srv.conns {
		cancel()
		c.close()
	}
}
