package ntp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrMalformedReply = errors.New("malformed NTP reply")

// BuildClientRequest returns a 48 byte client request. Only the first byte
// (leap 0, version, mode) is set.
func BuildClientRequest() []byte {
	packet := make([]byte, PacketSize)
	packet[0] = encodeFirstByte(0, VERSION, CLIENT)
	return packet
}

func encodeFirstByte(leap byte, version byte, mode Mode) byte {
	return (leap << 6) | (version << 3) | byte(mode)
}

// PutTimestamp writes ts big-endian at offset.
func PutTimestamp(packet []byte, offset int, ts Timestamp) error {
	if offset < 0 || len(packet)-offset < timestampSize {
		return fmt.Errorf("%w: %d bytes, need %d at offset %d", ErrMalformedReply, len(packet), timestampSize, offset)
	}
	binary.BigEndian.PutUint32(packet[offset:], ts.Seconds)
	binary.BigEndian.PutUint32(packet[offset+4:], ts.Fraction)
	return nil
}

func ParseTimestampField(packet []byte, offset int) (Timestamp, error) {
	if offset < 0 || len(packet)-offset < timestampSize {
		return Timestamp{}, fmt.Errorf("%w: %d bytes, need %d at offset %d", ErrMalformedReply, len(packet), timestampSize, offset)
	}
	return Timestamp{
		Seconds:  binary.BigEndian.Uint32(packet[offset:]),
		Fraction: binary.BigEndian.Uint32(packet[offset+4:]),
	}, nil
}

// ReceiveTimestampField is the server's receive time (t2).
func ReceiveTimestampField(packet []byte) (Timestamp, error) {
	return ParseTimestampField(packet, ReceiveTimestampOffset)
}

// TransmitTimestampField is the server's transmit time (t3).
func TransmitTimestampField(packet []byte) (Timestamp, error) {
	return ParseTimestampField(packet, TransmitTimestampOffset)
}
