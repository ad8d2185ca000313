// Package identity handles the self-identification string an instrument
// returns for the IEEE 488.2 *IDN? query.
package identity

import "strings"

// Query is the standard identification command
const Query = "*IDN?"

// Normalize strips a single trailing line terminator ("\n" or "\r\n")
func Normalize(raw string) string {
	if strings.HasSuffix(raw, "\r\n") {
		return raw[:len(raw)-2]
	}
	return strings.TrimSuffix(raw, "\n")
}

// Identity is a parsed *IDN? response
type Identity struct {
	raw          string
	Manufacturer string
	Model        string
	Serial       string
	Firmware     string
}

// Parse normalizes raw and splits it into its comma separated fields.
// Missing fields are left empty; extra fields are folded into Firmware.
func Parse(raw string) Identity {
	norm := Normalize(raw)
	id := Identity{raw: norm}

	fields := strings.SplitN(norm, ",", 4)
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	id.Manufacturer = get(0)
	id.Model = get(1)
	id.Serial = get(2)
	id.Firmware = get(3)

	return id
}

// Raw returns the normalized identity string used for plugin matching
func (i Identity) Raw() string {
	return i.raw
}

// String implements the Stringer interface
func (i Identity) String() string {
	return i.raw
}
