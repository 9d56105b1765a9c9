package command

import (
	"context"
	"strings"
	"time"

	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

func cmdTTL(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("ttl"))
	}
	return reply(resp.Integer(s.TTL(string(args[1]))))
}

// cmdExpire implements EXPIRE key seconds [NX|XX|GT|LT]. At most one flag
// is accepted; more arguments are a wrong-number-of-arguments error.
func cmdExpire(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 3 && len(args) != 4 {
		return reply(argErr("expire"))
	}
	key := string(args[1])
	seconds, ok := parseInt(args[2])
	if !ok {
		return reply(errValue(store.ErrNotInteger))
	}

	cond := store.ExpireAlways
	if len(args) == 4 {
		switch strings.ToUpper(string(args[3])) {
		case "NX":
			cond = store.ExpireNX
		case "XX":
			cond = store.ExpireXX
		case "GT":
			cond = store.ExpireGT
		case "LT":
			cond = store.ExpireLT
		default:
			return reply(resp.Errorf("ERR syntax error"))
		}
	}

	deadline := time.Now().UnixMilli() + seconds*1000
	ok = s.Expire(key, deadline, cond)
	return reply(resp.Bool(ok))
}
