package scpi

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
	"github.com/scopeshot/scopeshot-cli/test/testutil"
)

const rigolIDN = "RIGOL TECHNOLOGIES,DS1054Z,DS1ZA000000001,00.04.04.SP3\n"

// TestTransport_ResolveAddress tests default port handling
func TestTransport_ResolveAddress(t *testing.T) {
	tr := NewTransport(0, zerolog.Nop())

	assert.Equal(t, "192.168.1.20:5025", tr.ResolveAddress("192.168.1.20"))
	assert.Equal(t, "scope.lab:5555", tr.ResolveAddress("scope.lab:5555"))
	assert.Equal(t, "[fe80::1]:5025", tr.ResolveAddress("fe80::1"))
	assert.Equal(t, "dmm:5024", NewTransport(5024, zerolog.Nop()).ResolveAddress("dmm"))
}

// TestSession_SendReceive tests a plain command/response exchange
func TestSession_SendReceive(t *testing.T) {
	inst := testutil.NewMockInstrument(t, map[string][]byte{"*IDN?": []byte(rigolIDN)})
	tr := NewTransport(inst.Port(), zerolog.Nop())

	sess, err := tr.Connect(context.Background(), "127.0.0.1", time.Second)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Send([]byte("*IDN?"), time.Second))
	resp, err := sess.Receive(IDLengthMax, time.Second)
	require.NoError(t, err)

	assert.Equal(t, rigolIDN, string(resp))
	assert.Equal(t, []string{"*IDN?"}, inst.Commands())
}

// TestSession_ReceiveBlock tests binary block responses
func TestSession_ReceiveBlock(t *testing.T) {
	image := []byte("\x89PNG\r\n\x1a\n fake image \n data")
	inst := testutil.NewMockInstrument(t, map[string][]byte{":DISP:DATA?": testutil.Block(image)})

	sess, err := NewTransport(0, zerolog.Nop()).Connect(context.Background(), inst.Address(), time.Second)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Send([]byte(":DISP:DATA?\n"), time.Second))
	data, err := sess.ReceiveBlock(1<<20, time.Second)
	require.NoError(t, err)
	assert.Equal(t, image, data)
}

// TestSession_ReceiveN tests fixed size reads
func TestSession_ReceiveN(t *testing.T) {
	inst := testutil.NewMockInstrument(t, map[string][]byte{"scdp": []byte("BM0123456789")})

	sess, err := NewTransport(0, zerolog.Nop()).Connect(context.Background(), inst.Address(), time.Second)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Send([]byte("scdp"), time.Second))
	head, err := sess.ReceiveN(2, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "BM", string(head))

	rest, err := sess.ReceiveN(10, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(rest))
}

// TestSession_Receive_Timeout tests that an unanswered query fails after the timeout
func TestSession_Receive_Timeout(t *testing.T) {
	inst := testutil.NewMockInstrument(t, nil)

	sess, err := NewTransport(0, zerolog.Nop()).Connect(context.Background(), inst.Address(), time.Second)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Send([]byte("*IDN?"), time.Second))

	start := time.Now()
	_, err = sess.Receive(IDLengthMax, 100*time.Millisecond)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	var terr *transport.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, transport.OpReceive, terr.Op)

	var netErr net.Error
	require.True(t, errors.As(err, &netErr))
	assert.True(t, netErr.Timeout())
}

// TestTransport_Connect_Refused tests connect failures
func TestTransport_Connect_Refused(t *testing.T) {
	// Grab a free port and release it so nothing listens there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	_, err = NewTransport(0, zerolog.Nop()).Connect(context.Background(), addr, time.Second)
	require.Error(t, err)

	var terr *transport.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, transport.OpConnect, terr.Op)
	assert.Equal(t, addr, terr.Address)
	assert.Contains(t, err.Error(), "failed to connect")
}

// TestIdentityQuerier_QueryIdentity tests the *IDN? exchange and disconnect
func TestIdentityQuerier_QueryIdentity(t *testing.T) {
	inst := testutil.NewMockInstrument(t, map[string][]byte{"*IDN?": []byte(rigolIDN)})
	q := NewIdentityQuerier(NewTransport(inst.Port(), zerolog.Nop()))

	id, err := q.QueryIdentity(context.Background(), "127.0.0.1", time.Second)
	require.NoError(t, err)

	assert.Equal(t, rigolIDN, id, "Raw identity should be returned untouched")
	assert.Equal(t, 1, inst.Connections())
	assert.True(t, inst.WaitDisconnected(time.Second), "Session should be closed after the query")
}

// TestIdentityQuerier_NoAnswer_Disconnects tests that failed queries still release the connection
func TestIdentityQuerier_NoAnswer_Disconnects(t *testing.T) {
	inst := testutil.NewMockInstrument(t, nil)
	q := NewIdentityQuerier(NewTransport(0, zerolog.Nop()))

	_, err := q.QueryIdentity(context.Background(), inst.Address(), 100*time.Millisecond)
	require.Error(t, err)
	assert.True(t, inst.WaitDisconnected(time.Second), "Session should be closed after a failed query")
}

// TestTransport_ZeroTimeout_MeansNoDeadline tests that zero timeouts still work
func TestTransport_ZeroTimeout_MeansNoDeadline(t *testing.T) {
	inst := testutil.NewMockInstrument(t, map[string][]byte{"*IDN?": []byte(rigolIDN)})
	q := NewIdentityQuerier(NewTransport(0, zerolog.Nop()))

	id, err := q.QueryIdentity(context.Background(), "127.0.0.1:"+strconv.Itoa(inst.Port()), 0)
	require.NoError(t, err)
	assert.Equal(t, rigolIDN, id)
}
