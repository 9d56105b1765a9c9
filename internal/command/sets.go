package command

import (
	"context"

	"github.com/edirooss/respkv/internal/resp"
	"github.com/edirooss/respkv/internal/store"
)

func cmdSAdd(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("sadd"))
	}
	n, err := s.SAdd(string(args[1]), bytesToStrings(args[2:]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.Integer(int64(n)))
}

func cmdSCard(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("scard"))
	}
	n, err := s.SCard(string(args[1]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.Integer(int64(n)))
}

func cmdSDiff(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 2 {
		return reply(argErr("sdiff"))
	}
	os, err := s.SDiff(bytesToStrings(args[1:]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.BulkStringsArray(os.Members()))
}

func cmdSDiffStore(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("sdiffstore"))
	}
	os, err := s.SDiff(bytesToStrings(args[2:]))
	if err != nil {
		return reply(errValue(err))
	}
	s.OverwriteSet(string(args[1]), os)
	return reply(resp.Integer(int64(os.Len())))
}

func cmdSInter(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 2 {
		return reply(argErr("sinter"))
	}
	os, err := s.SInter(bytesToStrings(args[1:]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.BulkStringsArray(os.Members()))
}

func cmdSInterStore(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("sinterstore"))
	}
	os, err := s.SInter(bytesToStrings(args[2:]))
	if err != nil {
		return reply(errValue(err))
	}
	s.OverwriteSet(string(args[1]), os)
	return reply(resp.Integer(int64(os.Len())))
}

func cmdSUnion(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 2 {
		return reply(argErr("sunion"))
	}
	os, err := s.SUnion(bytesToStrings(args[1:]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.BulkStringsArray(os.Members()))
}

func cmdSUnionStore(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("sunionstore"))
	}
	os, err := s.SUnion(bytesToStrings(args[2:]))
	if err != nil {
		return reply(errValue(err))
	}
	s.OverwriteSet(string(args[1]), os)
	return reply(resp.Integer(int64(os.Len())))
}

func cmdSIsMember(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 3 {
		return reply(argErr("sismember"))
	}
	return reply(resp.Bool(s.SIsMember(string(args[1]), string(args[2]))))
}

// cmdSMembers implements SMEMBERS. A missing key reports an empty array; a
// key holding a non-set variant is WRONGTYPE, matching the original
// source's isinstance check (the Go store's own SMembers returns nil for
// both a missing key and a wrong-type key, so the WRONGTYPE decision is
// made here).
func cmdSMembers(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 2 {
		return reply(argErr("smembers"))
	}
	key := string(args[1])
	if s.Exists(key) && s.TypeOf(key) != store.KindSet {
		return reply(errValue(store.ErrWrongType))
	}
	return reply(resp.BulkStringsArray(s.SMembers(key)))
}

func cmdSMove(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) != 4 {
		return reply(argErr("smove"))
	}
	moved, err := s.SMove(string(args[1]), string(args[2]), string(args[3]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.Bool(moved))
}

func cmdSRem(_ context.Context, s *store.Store, args [][]byte) Outcome {
	if len(args) < 3 {
		return reply(argErr("srem"))
	}
	n, err := s.SRem(string(args[1]), bytesToStrings(args[2:]))
	if err != nil {
		return reply(errValue(err))
	}
	return reply(resp.Integer(int64(n)))
}
