// Package command implements the case-insensitive dispatch table and the
// per-family executors that translate RESP requests into store operations
// and back into RESP reply frames.
package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

// Handler executes one command's args (args[0] is the command name) against
// s and returns the reply to write back to the client.
type Handler func(ctx context.Context, s *store.Store, args [][]byte) Outcome

// Outcome is a handler's result. Shutdown distinguishes SHUTDOWN's
// connection-closing, no-reply contract from every other command's
// write-a-reply contract (spec.md §4.7). NoReply marks the blank-inline-
// line no-op, which (unlike every real command) writes nothing back.
type Outcome struct {
	Reply    resp.Value
	Shutdown bool
	NoReply  bool
}

func reply(v resp.Value) Outcome { return Outcome{Reply: v} }

var table = map[string]Handler{
	"PING":   cmdPing,
	"ECHO":   cmdEcho,
	"TYPE":   cmdType,
	"EXISTS": cmdExists,
	"DEL":    cmdDel,

	"FLUSHDB":  cmdFlushDB,
	"SHUTDOWN": cmdShutdown,

	"SET":    cmdSet,
	"GET":    cmdGet,
	"INCR":   cmdIncr,
	"TTL":    cmdTTL,
	"EXPIRE": cmdExpire,

	"RPUSH":  cmdRPush,
	"LPUSH":  cmdLPush,
	"LLEN":   cmdLLen,
	"LRANGE": cmdLRange,
	"LPOP":   cmdLPop,
	"BLPOP":  cmdBLPop,

	"XADD":   cmdXAdd,
	"XRANGE": cmdXRange,

	"SADD":        cmdSAdd,
	"SCARD":       cmdSCard,
	"SDIFF":       cmdSDiff,
	"SDIFFSTORE":  cmdSDiffStore,
	"SINTER":      cmdSInter,
	"SINTERSTORE": cmdSInterStore,
	"SUNION":      cmdSUnion,
	"SUNIONSTORE": cmdSUnionStore,
	"SISMEMBER":   cmdSIsMember,
	"SMEMBERS":    cmdSMembers,
	"SMOVE":       cmdSMove,
	"SREM":        cmdSRem,
}

// Dispatch looks up args[0] case-insensitively and runs its handler. An
// empty args (the inline-command edge case of a blank line) is a no-op
// producing no reply at all, the same way real Redis silently ignores a
// blank inline line.
func Dispatch(ctx context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) == 0 {
		return Outcome{NoReply: true}
	}
	name := strings.ToUpper(string(args[0]))
	h, ok := table[name]
	if !ok {
		return reply(resp.Errorf("ERR unknown command: %s", string(args[0])))
	}
	return h(ctx, s, args)
}

func argErr(cmd string) resp.Value {
	return resp.Errorf("ERR wrong number of arguments for '%s' command", cmd)
}

func errValue(err error) resp.Value {
	return resp.Error(err.Error())
}

func parseInt(b []byte) (int64, bool) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	return n, err == nil
}
