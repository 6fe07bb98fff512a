package clock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrNoServers = errors.New("no servers configured")

type ExchangeFunc func(ctx context.Context, server, port string, timeout time.Duration) (*RoundTrip, error)

// ServerResult is the outcome of one server's exchange. Exactly one of
// RoundTrip and Err is set.
type ServerResult struct {
	Server    string
	RoundTrip *RoundTrip
	Err       error
}

func (r ServerResult) OK() bool {
	return r.Err == nil && r.RoundTrip != nil
}

type Estimate struct {
	RunID   string
	Offset  float64 // weighted mean, milliseconds
	Used    int     // samples that carried a finite weight
	Results []ServerResult
}

type Querier struct {
	Port     string
	Timeout  time.Duration
	Exchange ExchangeFunc

	// Progress, when non-nil, receives one value per finished server.
	Progress chan<- ServerResult
}

func NewQuerier(config *Config) *Querier {
	return &Querier{
		Port:     config.Port,
		Timeout:  config.Timeout,
		Exchange: Exchange,
	}
}

// Query exchanges with every server concurrently, then combines the
// successful samples. Failed servers are logged and left out; only a run
// without any usable sample is an error.
func (q *Querier) Query(ctx context.Context, servers []string) (*Estimate, error) {
	if len(servers) == 0 {
		return nil, ErrNoServers
	}

	estimate := &Estimate{
		RunID:   uuid.NewString(),
		Results: make([]ServerResult, len(servers)),
	}
	info("run", estimate.RunID, "querying", len(servers), "servers")

	exchange := q.Exchange
	if exchange == nil {
		exchange = Exchange
	}

	var group errgroup.Group
	for i, server := range servers {
		group.Go(func() error {
			roundTrip, err := exchange(ctx, server, q.Port, q.Timeout)
			result := ServerResult{Server: server, RoundTrip: roundTrip, Err: err}
			if err != nil {
				result.RoundTrip = nil
				info("run", estimate.RunID, server, "contributed no sample:", err)
			} else {
				debug("run", estimate.RunID, server, "delay:", roundTrip.Delay(), "offset:", roundTrip.Offset())
			}
			estimate.Results[i] = result
			if q.Progress != nil {
				select {
				case q.Progress <- result:
				case <-ctx.Done():
				}
			}
			return nil
		})
	}
	group.Wait()

	samples := []Sample{}
	for _, result := range estimate.Results {
		if !result.OK() {
			continue
		}
		sample := result.RoundTrip.Sample()
		if w := sample.Weight(); w != 0 && !isNonFinite(w) {
			estimate.Used++
		}
		samples = append(samples, sample)
	}

	offset, err := Combine(samples)
	if err != nil {
		return estimate, err
	}
	estimate.Offset = offset
	info("run", estimate.RunID, "offset:", offset, "ms from", estimate.Used, "samples")
	return estimate, nil
}
