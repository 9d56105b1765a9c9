package connserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edirooss/respkv/internal/store"
)

// startTestServer boots a Server on an ephemeral loopback port and returns
// a go-redis client pointed at it, matching spec.md §8's end-to-end
// scenarios driven through a real RESP client rather than raw bytes.
func startTestServer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	st := store.New(zap.NewNop())
	srv := New(addr, st, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- srv.Run(ctx) }()

	// Run opens its own listener on srv.addr; poll until it accepts.
	require.Eventually(t, func() bool {
		c, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err != nil {
			return false
		}
		_ = c.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	client := redis.NewClient(&redis.Options{Addr: addr})
	cleanup := func() {
		_ = client.Close()
		cancel()
		<-runErr
	}
	return client, cleanup
}

func TestEndToEndPingEcho(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()
	ctx := context.Background()

	require.Equal(t, "PONG", client.Ping(ctx).Val())
	require.Equal(t, "hello", client.Echo(ctx, "hello").Val())
}

func TestEndToEndSetWithExpiry(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
	require.Equal(t, "v", client.Get(ctx, "k").Val())

	require.NoError(t, client.Set(ctx, "k2", "v2", 50*time.Millisecond).Err())
	require.Equal(t, "v2", client.Get(ctx, "k2").Val())
	time.Sleep(100 * time.Millisecond)
	_, err := client.Get(ctx, "k2").Result()
	require.ErrorIs(t, err, redis.Nil)
}

func TestEndToEndBLPopAcrossClients(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()
	ctx := context.Background()

	type popResult struct {
		key, val string
		err      error
	}
	resultCh := make(chan popResult, 1)
	go func() {
		res, err := client.BLPop(ctx, time.Second, "queue").Result()
		if err != nil {
			resultCh <- popResult{err: err}
			return
		}
		resultCh <- popResult{key: res[0], val: res[1]}
	}()

	time.Sleep(50 * time.Millisecond) // let BLPOP register as a waiter
	require.NoError(t, client.RPush(ctx, "queue", "item1").Err())

	select {
	case res := <-resultCh:
		require.NoError(t, res.err)
		require.Equal(t, "queue", res.key)
		require.Equal(t, "item1", res.val)
	case <-time.After(time.Second):
		t.Fatal("BLPOP did not unblock in time")
	}
}

func TestEndToEndXAddXRange(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()
	ctx := context.Background()

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "mystream",
		ID:     "*",
		Values: map[string]interface{}{"temperature": "36", "humidity": "95"},
	}).Result()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entries, err := client.XRange(ctx, "mystream", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "36", entries[0].Values["temperature"])
}

func TestEndToEndSetAlgebra(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, client.SAdd(ctx, "k1", "v1", "v2", "v3").Err())
	require.NoError(t, client.SAdd(ctx, "k2", "v2", "v4").Err())

	diff, err := client.SDiff(ctx, "k1", "k2").Result()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"v1", "v3"}, diff)
}

func TestEndToEndShutdownWakesBlockedClient(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()
	ctx := context.Background()

	blockedErrCh := make(chan error, 1)
	go func() {
		_, err := client.BLPop(ctx, 5*time.Second, "neverpushed").Result()
		blockedErrCh <- err
	}()
	time.Sleep(50 * time.Millisecond)

	shutdownClient := redis.NewClient(&redis.Options{Addr: client.Options().Addr})
	defer shutdownClient.Close()
	_ = shutdownClient.Process(ctx, redis.NewCmd(ctx, "SHUTDOWN"))

	select {
	case err := <-blockedErrCh:
		require.Error(t, err) // connection closed out from under the blocked call
	case <-time.After(2 * time.Second):
		t.Fatal("SHUTDOWN did not wake the blocked client")
	}
}
