package clock

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/AndrewLester/clock/internal/ntp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer answers every request with the packet built by reply. A nil
// reply from the handler means the request is dropped.
func startServer(t *testing.T, reply func(request []byte) []byte) string {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		packet := make([]byte, MTU)
		for {
			n, addr, err := conn.ReadFrom(packet)
			if err != nil {
				return
			}
			if response := reply(packet[:n]); response != nil {
				conn.WriteTo(response, addr)
			}
		}
	}()

	_, port, err := net.SplitHostPort(conn.LocalAddr().String())
	require.NoError(t, err)
	return port
}

func TestExchange(t *testing.T) {
	requests := make(chan []byte, 1)
	port := startServer(t, func(packet []byte) []byte {
		requests <- append([]byte(nil), packet...)
		now := time.Now()
		response := make([]byte, ntp.PacketSize)
		response[0] = 0x1C // version 3, server
		ntp.PutTimestamp(response, ntp.ReceiveTimestampOffset, ntp.TimeToTimestamp(now))
		ntp.PutTimestamp(response, ntp.TransmitTimestampOffset, ntp.TimeToTimestamp(now.Add(time.Millisecond)))
		return response
	})

	rt, err := Exchange(context.Background(), "127.0.0.1", port, time.Second)
	require.NoError(t, err)

	assert.Equal(t, ntp.BuildClientRequest(), <-requests)
	assert.False(t, rt.T4.Before(rt.T1))
	assert.Equal(t, time.Millisecond, rt.T3.Sub(rt.T2).Round(time.Microsecond))
	assert.Equal(t, time.UTC, rt.T1.Location())
	assert.Equal(t, time.UTC, rt.T2.Location())
	assert.Less(t, rt.Delay(), int64(1000))
}

func TestExchange_Timeout(t *testing.T) {
	port := startServer(t, func([]byte) []byte { return nil })

	start := time.Now()
	rt, err := Exchange(context.Background(), "127.0.0.1", port, 50*time.Millisecond)
	assert.Nil(t, rt)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestExchange_ContextDeadline(t *testing.T) {
	port := startServer(t, func([]byte) []byte { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Exchange(ctx, "127.0.0.1", port, time.Minute)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestExchange_MalformedReply(t *testing.T) {
	for _, size := range []int{0, 12, 39, 47} {
		port := startServer(t, func([]byte) []byte { return make([]byte, size) })

		rt, err := Exchange(context.Background(), "127.0.0.1", port, time.Second)
		assert.Nil(t, rt)
		assert.ErrorIs(t, err, ntp.ErrMalformedReply, "reply of %d bytes", size)
	}
}

func TestExchange_NetworkError(t *testing.T) {
	_, err := Exchange(context.Background(), "127.0.0.1", "99999", time.Second)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "dial", netErr.Op)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestParseReply(t *testing.T) {
	t1 := time.Unix(1_700_000_000, 0).UTC()
	t4 := t1.Add(210 * time.Millisecond)

	reply := make([]byte, ntp.PacketSize)
	require.NoError(t, ntp.PutTimestamp(reply, ntp.ReceiveTimestampOffset, ntp.TimeToTimestamp(t1.Add(100*time.Millisecond))))
	require.NoError(t, ntp.PutTimestamp(reply, ntp.TransmitTimestampOffset, ntp.TimeToTimestamp(t1.Add(105*time.Millisecond))))

	rt, err := parseReply(reply, t1, t4)
	require.NoError(t, err)
	assert.Equal(t, int64(205), rt.Delay())
	assert.Equal(t, int64(102), rt.Offset())
}

func TestServerAddress(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"time.google.com", "time.google.com:123"},
		{"192.168.1.20:4123", "192.168.1.20:4123"},
		{"::1", "[::1]:123"},
		{"[::1]:4123", "[::1]:4123"},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			assert.Equal(t, tt.want, serverAddress(tt.server, "123"))
		})
	}
}

func TestExchange_ServerPortOverridesDefault(t *testing.T) {
	port := startServer(t, func([]byte) []byte {
		response := make([]byte, ntp.PacketSize)
		ts := ntp.TimeToTimestamp(time.Now())
		ntp.PutTimestamp(response, ntp.ReceiveTimestampOffset, ts)
		ntp.PutTimestamp(response, ntp.TransmitTimestampOffset, ts)
		return response
	})

	rt, err := Exchange(context.Background(), net.JoinHostPort("127.0.0.1", port), "123", time.Second)
	require.NoError(t, err)
	assert.NotNil(t, rt)
}
