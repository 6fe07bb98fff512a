package ntp

type Mode byte

const (
	RESERVED Mode = iota
	SYMMETRIC_ACTIVE
	SYMMETRIC_PASSIVE
	CLIENT
	SERVER
	BROADCAST_SERVER
	BROADCAST_CLIENT
	RESERVED_PRIVATE_USE
)

const (
	Port            = "123" // NTP port number
	VERSION    byte = 3     // version sent in client requests
	PacketSize      = 48    // fixed NTP header length
)

// Field offsets within the NTP header.
const (
	ReceiveTimestampOffset  = 32
	TransmitTimestampOffset = 40
	timestampSize           = 8
)
