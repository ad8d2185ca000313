package scpi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Block decoding errors
var (
	ErrMalformedBlock   = errors.New("malformed definite length block")
	ErrResponseTooLarge = errors.New("response exceeds maximum size")
)

// ReadBlock decodes an IEEE 488.2 definite length arbitrary block
// ("#<n><length><payload>") from r and returns the payload. A single
// newline directly following the payload is consumed if already buffered.
func ReadBlock(r *bufio.Reader, maxBytes int) ([]byte, error) {
	hash, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if hash != '#' {
		return nil, fmt.Errorf("%w: expected '#', got %q", ErrMalformedBlock, hash)
	}

	digits, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if digits < '1' || digits > '9' {
		return nil, fmt.Errorf("%w: invalid length digit count %q", ErrMalformedBlock, digits)
	}

	header := make([]byte, int(digits-'0'))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length, err := strconv.Atoi(string(header))
	if err != nil || length < 0 {
		return nil, fmt.Errorf("%w: invalid length %q", ErrMalformedBlock, header)
	}
	if maxBytes > 0 && length > maxBytes {
		return nil, fmt.Errorf("%w: block of %d bytes, limit %d", ErrResponseTooLarge, length, maxBytes)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	if r.Buffered() > 0 {
		if next, err := r.Peek(1); err == nil && next[0] == '\n' {
			r.ReadByte()
		}
	}

	return payload, nil
}

// ReadLine reads up to maxBytes bytes or through the first newline,
// whichever comes first. The newline is kept.
func ReadLine(r *bufio.Reader, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("invalid response size limit %d", maxBytes)
	}

	var line []byte
	for len(line) < maxBytes {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		line = append(line, b)
		if b == '\n' {
			break
		}
	}
	return line, nil
}
