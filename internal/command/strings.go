package command

import (
	"context"
	"strings"
	"time"

	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

// cmdSet implements SET key value [EX s|PX ms|EXAT ts|PXAT ts|KEEPTTL]
// (spec.md §4.5). Absence of all expiry options makes the new value
// persistent, discarding any prior expiry. The store tracks deadlines in
// unix-milliseconds, so EX/EXAT (seconds) are scaled up and PX/PXAT
// (already milliseconds) are taken as-is — PX must not be truncated to
// whole seconds, or sub-second TTLs like "PX 100" would never expire on
// time.
func cmdSet(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("set"))
	}
	key := string(args[1])
	value := string(args[2])

	var deadline *int64
	opts := args[3:]
	for i := 0; i < len(opts); i++ {
		switch strings.ToUpper(string(opts[i])) {
		case "EX":
			if i+1 >= len(opts) {
				return reply(argErr("set"))
			}
			n, ok := parseInt(opts[i+1])
			if !ok {
				return reply(errValue(store.ErrNotInteger))
			}
			d := time.Now().UnixMilli() + n*1000
			deadline = &d
			i++
		case "PX":
			if i+1 >= len(opts) {
				return reply(argErr("set"))
			}
			n, ok := parseInt(opts[i+1])
			if !ok {
				return reply(errValue(store.ErrNotInteger))
			}
			d := time.Now().UnixMilli() + n
			deadline = &d
			i++
		case "EXAT":
			if i+1 >= len(opts) {
				return reply(argErr("set"))
			}
			n, ok := parseInt(opts[i+1])
			if !ok {
				return reply(errValue(store.ErrNotInteger))
			}
			d := n * 1000
			deadline = &d
			i++
		case "PXAT":
			if i+1 >= len(opts) {
				return reply(argErr("set"))
			}
			n, ok := parseInt(opts[i+1])
			if !ok {
				return reply(errValue(store.ErrNotInteger))
			}
			deadline = &n
			i++
		case "KEEPTTL":
			deadline = s.GetExpiry(key)
		default:
			return reply(resp.Errorf("ERR syntax error"))
		}
	}

	s.Set(key, value, deadline)
	return reply(resp.OK)
}

func cmdGet(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("get"))
	}
	v, ok, err := s.Get(string(args[1]))
	if err != nil {
		return reply(errValue(err))
	}
	if !ok {
		return reply(resp.NullBulk())
	}
	return reply(resp.BulkString(v))
}

func cmdIncr(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("incr"))
	}
	n, err := s.Incr(string(args[1]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.Integer(n))
}
