package scpi

import (
	"context"
	"time"

	"github.com/scopeshot/scopeshot-cli/internal/core/identity"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// IDLengthMax bounds the size of an identity response
const IDLengthMax = 65536

// IdentityQuerier asks an instrument for its *IDN? identity string
type IdentityQuerier struct {
	transport transport.Transport
}

// NewIdentityQuerier creates an identity querier on top of t
func NewIdentityQuerier(t transport.Transport) *IdentityQuerier {
	return &IdentityQuerier{transport: t}
}

// QueryIdentity connects, sends *IDN? and returns the raw response.
// The session is closed on every path.
func (q *IdentityQuerier) QueryIdentity(ctx context.Context, address string, timeout time.Duration) (string, error) {
	sess, err := q.transport.Connect(ctx, address, timeout)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	if err := sess.Send([]byte(identity.Query), timeout); err != nil {
		return "", err
	}
	resp, err := sess.Receive(IDLengthMax, timeout)
	if err != nil {
		return "", err
	}
	return string(resp), nil
}
