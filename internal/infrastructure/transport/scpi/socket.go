// Package scpi implements the instrument transport as SCPI commands over a
// raw TCP socket, the way LXI instruments expose it on port 5025.
package scpi

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// DefaultPort is the LXI raw SCPI socket port
const DefaultPort = 5025

// Transport dials instruments over TCP
type Transport struct {
	port   int
	logger zerolog.Logger
}

// NewTransport creates a transport that uses port for addresses without an explicit port
func NewTransport(port int, logger zerolog.Logger) *Transport {
	if port <= 0 {
		port = DefaultPort
	}
	return &Transport{port: port, logger: logger}
}

// ResolveAddress appends the default port unless address already carries one
func (t *Transport) ResolveAddress(address string) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(address, strconv.Itoa(t.port))
}

// Connect implements transport.Transport
func (t *Transport) Connect(ctx context.Context, address string, timeout time.Duration) (transport.Session, error) {
	target := t.ResolveAddress(address)
	dialer := net.Dialer{Timeout: timeout}

	t.logger.Debug().Str("address", target).Dur("timeout", timeout).Msg("connecting to instrument")
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, &transport.TransportError{Op: transport.OpConnect, Address: address, Err: err}
	}

	return &session{
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, 64*1024),
		address: address,
		logger:  t.logger,
	}, nil
}

// session is an open SCPI socket
type session struct {
	conn    net.Conn
	reader  *bufio.Reader
	address string
	logger  zerolog.Logger
}

func (s *session) setDeadline(timeout time.Duration) error {
	if timeout > 0 {
		return s.conn.SetDeadline(time.Now().Add(timeout))
	}
	return s.conn.SetDeadline(time.Time{})
}

func (s *session) fail(op string, err error) error {
	return &transport.TransportError{Op: op, Address: s.address, Err: err}
}

// Send implements transport.Session
func (s *session) Send(command []byte, timeout time.Duration) error {
	if err := s.setDeadline(timeout); err != nil {
		return s.fail(transport.OpSend, err)
	}

	msg := command
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg = append(append(make([]byte, 0, len(command)+1), command...), '\n')
	}

	s.logger.Debug().Str("address", s.address).Bytes("command", command).Msg("send")
	if _, err := s.conn.Write(msg); err != nil {
		return s.fail(transport.OpSend, err)
	}
	return nil
}

// Receive implements transport.Session
func (s *session) Receive(maxBytes int, timeout time.Duration) ([]byte, error) {
	if err := s.setDeadline(timeout); err != nil {
		return nil, s.fail(transport.OpReceive, err)
	}
	line, err := ReadLine(s.reader, maxBytes)
	if err != nil {
		return nil, s.fail(transport.OpReceive, err)
	}
	s.logger.Debug().Str("address", s.address).Int("bytes", len(line)).Msg("receive")
	return line, nil
}

// ReceiveBlock implements transport.Session
func (s *session) ReceiveBlock(maxBytes int, timeout time.Duration) ([]byte, error) {
	if err := s.setDeadline(timeout); err != nil {
		return nil, s.fail(transport.OpReceive, err)
	}
	data, err := ReadBlock(s.reader, maxBytes)
	if err != nil {
		return nil, s.fail(transport.OpReceive, err)
	}
	s.logger.Debug().Str("address", s.address).Int("bytes", len(data)).Msg("receive block")
	return data, nil
}

// ReceiveN implements transport.Session
func (s *session) ReceiveN(n int, timeout time.Duration) ([]byte, error) {
	if n < 0 {
		return nil, s.fail(transport.OpReceive, fmt.Errorf("invalid read size %d", n))
	}
	if err := s.setDeadline(timeout); err != nil {
		return nil, s.fail(transport.OpReceive, err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return nil, s.fail(transport.OpReceive, err)
	}
	return buf, nil
}

// Close implements transport.Session
func (s *session) Close() error {
	s.logger.Debug().Str("address", s.address).Msg("disconnect")
	return s.conn.Close()
}

var (
	_ transport.Transport = (*Transport)(nil)
	_ transport.Session   = (*session)(nil)
)
