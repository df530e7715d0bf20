package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisdb "posterminal/pkg/db/redis"
)

func TestNewClient_Success(t *testing.T) {
	srv := miniredis.RunT(t)

	host, portStr, _ := strings.Cut(srv.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redisdb.DefaultConfig()
	cfg.Host = host
	cfg.Port = port

	client, err := redisdb.NewClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.Equal(t, "v", srv.Get("k"))
}

func TestNewClient_ConnectionFailure(t *testing.T) {
	cfg := &redisdb.Config{
		Host:           "127.0.0.1",
		Port:           1,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	client, err := redisdb.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), redisdb.ErrConnect)
}
