package transport

import (
	"context"
	"fmt"
	"time"
)

// Transport opens control sessions to LAN instruments
type Transport interface {
	// Connect opens a session to the instrument at address
	Connect(ctx context.Context, address string, timeout time.Duration) (Session, error)
}

// Session is an open, blocking command/response channel to one instrument.
// Every call applies its own timeout; zero means no timeout.
type Session interface {
	// Send writes one command to the instrument
	Send(command []byte, timeout time.Duration) error

	// Receive reads one newline terminated response of at most maxBytes.
	// The terminator is returned as part of the response.
	Receive(maxBytes int, timeout time.Duration) ([]byte, error)

	// ReceiveBlock reads an IEEE 488.2 definite length block and returns its payload
	ReceiveBlock(maxBytes int, timeout time.Duration) ([]byte, error)

	// ReceiveN reads exactly n bytes
	ReceiveN(n int, timeout time.Duration) ([]byte, error)

	// Close disconnects from the instrument
	Close() error
}

// Transport operations reported in TransportError
const (
	OpConnect = "connect"
	OpSend    = "send"
	OpReceive = "receive"
)

// TransportError describes a failed exchange with an instrument
type TransportError struct {
	Op      string
	Address string
	Err     error
}

func (e *TransportError) Error() string {
	switch e.Op {
	case OpConnect:
		return fmt.Sprintf("failed to connect to %s: %v", e.Address, e.Err)
	case OpSend:
		return fmt.Sprintf("failed to send message to %s: %v", e.Address, e.Err)
	case OpReceive:
		return fmt.Sprintf("failed to receive message from %s: %v", e.Address, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Address, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
