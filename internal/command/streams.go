package command

import (
	"context"
	"strings"

	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

func cmdXAdd(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("xadd"))
	}
	fields := parseFieldValuePairs(args[3:])
	id, err := s.XAdd(string(args[1]), string(args[2]), fields)
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.BulkString(id.String()))
}

func parseFieldValuePairs(rest [][]byte) []store.FieldValue {
	out := make([]store.FieldValue, 0, (len(rest)+1)/2)
	for j := 0; j < len(rest); j += 2 {
		field := string(rest[j])
		value := ""
		if j+1 < len(rest) {
			value = string(rest[j+1])
		}
		out = append(out, store.FieldValue{Field: field, Value: value})
	}
	return out
}

// cmdXRange implements XRANGE key start end [COUNT n].
func cmdXRange(_ context.Context, s *store.Store, args [][]byte) Outcome {
	var countGiven bool
	var count int64

	switch len(args) {
	case 4:
	case 6:
		if strings.ToUpper(string(args[4])) != "COUNT" {
			return reply(resp.Errorf("ERR syntax error"))
		}
		n, ok := parseInt(args[5])
		if !ok {
			return reply(errValue(store.ErrNotInteger))
		}
		count, countGiven = n, true
	default:
		return reply(argErr("xrange"))
	}

	entries, nullBulk, err := s.XRange(string(args[1]), string(args[2]), string(args[3]), int(count), countGiven)
	if err != nil {
		return reply(errValue(err))
	}
	if nullBulk {
		return reply(resp.NullBulk())
	}

	out := make([]resp.Value, len(entries))
	for i, e := range entries {
		fv := make([]resp.Value, 0, len(e.Fields)*2)
		for _, f := range e.Fields {
			fv = append(fv, resp.BulkString(f.Field), resp.BulkString(f.Value))
		}
		out[i] = resp.Array(resp.BulkString(e.ID.String()), resp.ArrayOf(fv))
	}
	return reply(resp.ArrayOf(out))
}
