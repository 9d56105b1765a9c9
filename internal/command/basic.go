package command

import (
	"context"
	"strings"

	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

func cmdPing(_ context.Context, _ *store.Store, args [][]byte) Outcome {
	switch len(args) {
	case 1:
		return reply(resp.SimpleString("PONG"))
	case 2:
		return reply(resp.SimpleString(string(args[1])))
	default:
		return reply(argErr("ping"))
	}
}

func cmdEcho(_ context.Context, _ *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("echo"))
	}
	return reply(resp.BulkStringBytes(args[1]))
}

func cmdType(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("type"))
	}
	return reply(resp.SimpleString(s.TypeOf(string(args[1])).String()))
}

func cmdExists(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 2 {
		return reply(argErr("exists"))
	}
	var n int64
	for _, k := range args[1:] {
		if s.Exists(string(k)) {
			n++
		}
	}
	return reply(resp.Integer(n))
}

func cmdDel(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 2 {
		return reply(argErr("del"))
	}
	var n int64
	for _, k := range args[1:] {
		if s.Delete(string(k)) {
			n++
		}
	}
	return reply(resp.Integer(n))
}

// cmdFlushDB implements FLUSHDB [SYNC|ASYNC]. Both variants are
// observationally equivalent here (no background persistence to defer),
// matching spec.md §4.3's note.
func cmdFlushDB(_ context.Context, s *store.Store, args [][]byte) Outcome {
	method := ""
	if len(args) > 1 {
		method = strings.ToUpper(string(args[1]))
	}
	if method == "ASYNC" {
		s.FlushAsync()
	} else {
		s.FlushSync()
	}
	return reply(resp.OK)
}

// cmdShutdown signals the connection handler to run the shutdown sequence
// (wake waiters, cancel sibling connections, close the accept socket)
// instead of writing a reply (spec.md §4.7).
func cmdShutdown(_ context.Context, _ *store.Store, _ [][]byte) Outcome {
	return Outcome{Shutdown: true}
}
