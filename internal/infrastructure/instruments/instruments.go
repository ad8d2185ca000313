// Package instruments contains the built-in per-model screenshot plugins.
// Each plugin knows the command sequence its instrument family needs to
// produce a screen dump over the SCPI transport.
package instruments

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// ImageSizeMax bounds the size of a screenshot accepted from an instrument
const ImageSizeMax = 0x400000 // 4 MB

// ErrUnexpectedImage is returned when the instrument answers with something
// that is not the expected image format
var ErrUnexpectedImage = errors.New("unexpected image data")

// withSession connects for req, runs fn and disconnects on every path
func withSession(ctx context.Context, t transport.Transport, req plugin.CaptureRequest, fn func(transport.Session) (*plugin.Screenshot, error)) (*plugin.Screenshot, error) {
	sess, err := t.Connect(ctx, req.Address, req.Timeout)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	return fn(sess)
}

// blockCapture sends a fixed command sequence and reads the screen dump as a
// single IEEE 488.2 definite length block
type blockCapture struct {
	transport transport.Transport
	commands  []string
	format    string
}

// Capture implements plugin.Handler
func (b *blockCapture) Capture(ctx context.Context, req plugin.CaptureRequest) (*plugin.Screenshot, error) {
	return withSession(ctx, b.transport, req, func(sess transport.Session) (*plugin.Screenshot, error) {
		for _, cmd := range b.commands {
			if err := sess.Send([]byte(cmd), req.Timeout); err != nil {
				return nil, err
			}
		}

		data, err := sess.ReceiveBlock(ImageSizeMax, req.Timeout)
		if err != nil {
			return nil, err
		}
		return &plugin.Screenshot{Data: data, Format: b.format}, nil
	})
}

var _ plugin.Handler = (*blockCapture)(nil)

// bmpHeaderSize is the size of the BITMAPFILEHEADER that starts every BMP file
const bmpHeaderSize = 14

// bmpCapture sends a fixed command sequence and reads a bare BMP file. The
// instrument sends no length prefix, so the size comes from the file header.
type bmpCapture struct {
	transport transport.Transport
	commands  []string
}

// Capture implements plugin.Handler
func (b *bmpCapture) Capture(ctx context.Context, req plugin.CaptureRequest) (*plugin.Screenshot, error) {
	return withSession(ctx, b.transport, req, func(sess transport.Session) (*plugin.Screenshot, error) {
		for _, cmd := range b.commands {
			if err := sess.Send([]byte(cmd), req.Timeout); err != nil {
				return nil, err
			}
		}

		header, err := sess.ReceiveN(bmpHeaderSize, req.Timeout)
		if err != nil {
			return nil, err
		}
		if header[0] != 'B' || header[1] != 'M' {
			return nil, fmt.Errorf("%w: missing BMP signature", ErrUnexpectedImage)
		}

		size := int(binary.LittleEndian.Uint32(header[2:6]))
		if size < bmpHeaderSize || size > ImageSizeMax {
			return nil, fmt.Errorf("%w: invalid BMP size %d", ErrUnexpectedImage, size)
		}

		body, err := sess.ReceiveN(size-bmpHeaderSize, req.Timeout)
		if err != nil {
			return nil, err
		}

		return &plugin.Screenshot{Data: append(header, body...), Format: "bmp"}, nil
	})
}

var _ plugin.Handler = (*bmpCapture)(nil)
