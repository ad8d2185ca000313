package testutil

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// MockInstrument is a loopback SCPI instrument for tests. It answers each
// newline terminated command with a scripted response; commands without a
// response are recorded and left unanswered.
type MockInstrument struct {
	listener net.Listener

	mu          sync.Mutex
	responses   map[string][]byte
	commands    []string
	connections int
	disconnects int
	open        map[net.Conn]struct{}

	wg sync.WaitGroup
}

// NewMockInstrument starts a mock instrument on 127.0.0.1 and stops it when the test ends
func NewMockInstrument(t testing.TB, responses map[string][]byte) *MockInstrument {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start mock instrument: %v", err)
	}

	m := &MockInstrument{
		listener:  listener,
		responses: make(map[string][]byte, len(responses)),
		open:      make(map[net.Conn]struct{}),
	}
	for cmd, resp := range responses {
		m.responses[cmd] = resp
	}

	m.wg.Add(1)
	go m.acceptLoop()
	t.Cleanup(m.Close)

	return m
}

// Address returns the host:port the instrument listens on
func (m *MockInstrument) Address() string {
	return m.listener.Addr().String()
}

// Port returns the TCP port the instrument listens on
func (m *MockInstrument) Port() int {
	return m.listener.Addr().(*net.TCPAddr).Port
}

// SetResponse scripts the response for command
func (m *MockInstrument) SetResponse(command string, response []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[command] = response
}

// Commands returns every command received so far, in order
func (m *MockInstrument) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.commands))
	copy(out, m.commands)
	return out
}

// Connections returns the number of accepted connections
func (m *MockInstrument) Connections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connections
}

// WaitDisconnected waits until every accepted connection has been closed by
// the client and reports whether that happened before timeout
func (m *MockInstrument) WaitDisconnected(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		m.mu.Lock()
		done := m.connections == m.disconnects
		m.mu.Unlock()
		if done {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// Close stops the listener, drops open connections and waits for all handlers
func (m *MockInstrument) Close() {
	m.listener.Close()
	m.mu.Lock()
	for conn := range m.open {
		conn.Close()
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *MockInstrument) acceptLoop() {
	defer m.wg.Done()
	for {
		conn, err := m.listener.Accept()
		if err != nil {
			return
		}

		m.mu.Lock()
		m.connections++
		m.open[conn] = struct{}{}
		m.mu.Unlock()

		m.wg.Add(1)
		go m.serve(conn)
	}
}

func (m *MockInstrument) serve(conn net.Conn) {
	defer m.wg.Done()
	defer func() {
		conn.Close()
		m.mu.Lock()
		m.disconnects++
		delete(m.open, conn)
		m.mu.Unlock()
	}()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		command := strings.TrimRight(line, "\r\n")

		m.mu.Lock()
		m.commands = append(m.commands, command)
		resp, ok := m.responses[command]
		m.mu.Unlock()

		if ok {
			if _, err := conn.Write(resp); err != nil {
				return
			}
		}
	}
}

// Block encodes data as an IEEE 488.2 definite length block followed by a newline
func Block(data []byte) []byte {
	length := fmt.Sprintf("%d", len(data))
	out := []byte(fmt.Sprintf("#%d%s", len(length), length))
	out = append(out, data...)
	return append(out, '\n')
}
