package recordstore

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmsuarez/usermap/pkg/config"
)

func configRedis(url, addr string) config.RedisConfig {
	return config.RedisConfig{URL: url, Address: addr}
}

type mockCmdable struct {
	records map[string]string
	pingErr error
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.pingErr != nil {
		cmd.SetErr(m.pingErr)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func (m *mockCmdable) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	cmd := redis.NewMapStringStringCmd(ctx, "hgetall", key)
	cmd.SetVal(m.records)
	return cmd
}

func TestFetchReturnsSnapshot(t *testing.T) {
	mock := &mockCmdable{records: map[string]string{
		"u1": `{"name":"Amy","zip":"12345"}`,
		"u2": `{"name":"Zoe","zip":"54321"}`,
	}}
	client := &Client{store: mock, key: "usermap:users"}

	snap, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, `{"name":"Amy","zip":"12345"}`, string(snap["u1"]))
}

func TestFetchUninitialized(t *testing.T) {
	client := &Client{}
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
}

func TestWatchRequiresRawConnection(t *testing.T) {
	client := &Client{store: &mockCmdable{}}
	err := client.Watch(context.Background(), func(Snapshot) {})
	require.Error(t, err)
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	_, err := optionsFromConfig(configRedis("", ""))
	require.Error(t, err)

	opts, err := optionsFromConfig(configRedis("", "localhost:6379"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
}

func TestPing(t *testing.T) {
	client := &Client{store: &mockCmdable{}}
	require.NoError(t, client.Ping(context.Background()))
}
