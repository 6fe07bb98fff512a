package clock

import (
	"time"

	"github.com/beevik/ntp"
)

// Reference asks server for its clock offset through an independent SNTP
// client, for comparison with the local estimate.
func Reference(server, port string, timeout time.Duration) (time.Duration, error) {
	response, err := ntp.QueryWithOptions(serverAddress(server, port), ntp.QueryOptions{
		Timeout: timeout,
	})
	if err != nil {
		return 0, err
	}
	if err := response.Validate(); err != nil {
		return 0, err
	}
	return response.ClockOffset, nil
}
