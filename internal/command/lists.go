package command

import (
	"context"
	"strconv"
	"time"

	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

func cmdRPush(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("rpush"))
	}
	n, err := s.RPush(string(args[1]), bytesToStrings(args[2:]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.Integer(int64(n)))
}

func cmdLPush(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("lpush"))
	}
	n, err := s.LPush(string(args[1]), bytesToStrings(args[2:]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.Integer(int64(n)))
}

func cmdLLen(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("llen"))
	}
	return reply(resp.Integer(int64(s.LLen(string(args[1])))))
}

func cmdLRange(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 4 {
		return reply(argErr("lrange"))
	}
	start, ok1 := parseInt(args[2])
	end, ok2 := parseInt(args[3])
	if !ok1 || !ok2 {
		return reply(errValue(store.ErrNotInteger))
	}
	elems := s.LRange(string(args[1]), int(start), int(end))
	return reply(resp.BulkStringsArray(elems))
}

// cmdLPop implements LPOP key [count]. The reply shape (bulk vs. array)
// follows the requested count: a bare LPOP or a count of 1 or less replies
// with a bulk string; a count above 1 replies with an array of the
// elements removed, which holds fewer than count if the list was shorter.
func cmdLPop(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 2 || len(args) > 3 {
		return reply(argErr("lpop"))
	}
	count := 1
	if len(args) == 3 {
		n, ok := parseInt(args[2])
		if !ok {
			return reply(errValue(store.ErrNotInteger))
		}
		count = int(n)
	}
	out, err := s.LPop(string(args[1]), count)
	if err != nil {
		return reply(errValue(err))
	}
	if out == nil {
		return reply(resp.NullBulk())
	}
	if count <= 1 {
		return reply(resp.BulkString(out[0]))
	}
	return reply(resp.BulkStringsArray(out))
}

// cmdBLPop implements BLPOP key timeout, with timeout as a fractional-
// seconds literal (original source parses it with Python's float()).
func cmdBLPop(ctx context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 3 {
		return reply(argErr("blpop"))
	}
	seconds, err := strconv.ParseFloat(string(args[2]), 64)
	if err != nil {
		return reply(errValue(store.ErrNotInteger))
	}
	timeout := time.Duration(seconds * float64(time.Second))

	v, outcome := s.BLPop(ctx, string(args[1]), timeout)
	if outcome != store.BLPopFulfilled {
		return reply(resp.NullBulk())
	}
	return reply(resp.Array(resp.BulkStringBytes(args[1]), resp.BulkString(v)))
}

func bytesToStrings(bs [][]byte) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}
