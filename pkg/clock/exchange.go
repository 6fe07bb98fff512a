package clock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/AndrewLester/clock/internal/ntp"
)

const DefaultTimeout = time.Second

const MTU = 1300

var ErrTimeout = errors.New("server did not respond")

// NetworkError is a socket level failure for one server. It is never retried.
type NetworkError struct {
	Op     string
	Server string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Server, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RoundTrip holds the four timestamps of one client/server exchange, all UTC.
type RoundTrip struct {
	T1 time.Time // local send
	T2 time.Time // server receive
	T3 time.Time // server transmit
	T4 time.Time // local receive
}

// Exchange sends one client request to server on a fresh socket and waits
// at most timeout for the reply. port is used unless server carries its own.
func Exchange(ctx context.Context, server, port string, timeout time.Duration) (*RoundTrip, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	address := serverAddress(server, port)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "udp", address)
	if err != nil {
		return nil, &NetworkError{Op: "dial", Server: address, Err: err}
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, &NetworkError{Op: "deadline", Server: address, Err: err}
	}

	request := ntp.BuildClientRequest()

	t1 := time.Now().UTC()
	if _, err := conn.Write(request); err != nil {
		return nil, classify("send", address, err)
	}

	reply := make([]byte, MTU)
	n, err := conn.Read(reply)
	t4 := time.Now().UTC()
	if err != nil {
		return nil, classify("receive", address, err)
	}
	debug("received", n, "bytes from", address)

	return parseReply(reply[:n], t1, t4)
}

func parseReply(reply []byte, t1, t4 time.Time) (*RoundTrip, error) {
	rec, err := ntp.ReceiveTimestampField(reply)
	if err != nil {
		return nil, err
	}
	xmt, err := ntp.TransmitTimestampField(reply)
	if err != nil {
		return nil, err
	}

	return &RoundTrip{
		T1: t1,
		T2: rec.Time(),
		T3: xmt.Time(),
		T4: t4,
	}, nil
}

func classify(op, address string, err error) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", ErrTimeout, address, op)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s after %s", ErrTimeout, address, op)
	}
	return &NetworkError{Op: op, Server: address, Err: err}
}

// serverAddress keeps an explicit host:port, such as one advertised over
// mDNS, and otherwise joins server with the default port.
func serverAddress(server, port string) string {
	if _, serverPort, err := net.SplitHostPort(server); err == nil && serverPort != "" {
		return server
	}
	return net.JoinHostPort(server, port)
}
