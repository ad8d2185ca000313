package testfixtures

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
)

// DescriptorBuilder provides a builder pattern for creating test plugins
type DescriptorBuilder struct {
	name        string
	description string
	patterns    []string
	format      string
	data        []byte
	err         error
	recorder    *CaptureRecorder
}

// CaptureRecorder collects the requests a built plugin was invoked with
type CaptureRecorder struct {
	mu       sync.Mutex
	requests []plugin.CaptureRequest
}

// Requests returns the recorded requests in call order
func (r *CaptureRecorder) Requests() []plugin.CaptureRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]plugin.CaptureRequest(nil), r.requests...)
}

func (r *CaptureRecorder) record(req plugin.CaptureRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

// NewDescriptorBuilder creates a new DescriptorBuilder with sensible defaults
func NewDescriptorBuilder() *DescriptorBuilder {
	return &DescriptorBuilder{
		name:        "test-plugin",
		description: "Test plugin",
		format:      "png",
		data:        []byte("\x89PNG\r\n\x1a\ntest"),
		recorder:    &CaptureRecorder{},
	}
}

// WithName sets the plugin name
func (b *DescriptorBuilder) WithName(name string) *DescriptorBuilder {
	b.name = name
	return b
}

// WithDescription sets the plugin description
func (b *DescriptorBuilder) WithDescription(description string) *DescriptorBuilder {
	b.description = description
	return b
}

// WithPatterns sets the identity patterns from a space separated list
func (b *DescriptorBuilder) WithPatterns(patterns string) *DescriptorBuilder {
	b.patterns = plugin.SplitPatterns(patterns)
	return b
}

// WithImage sets the screenshot the plugin returns
func (b *DescriptorBuilder) WithImage(data []byte, format string) *DescriptorBuilder {
	b.data = data
	b.format = format
	return b
}

// WithError makes the plugin fail with err
func (b *DescriptorBuilder) WithError(err error) *DescriptorBuilder {
	b.err = err
	return b
}

// Recorder returns the recorder shared by every descriptor built from b
func (b *DescriptorBuilder) Recorder() *CaptureRecorder {
	return b.recorder
}

// Build creates the descriptor
func (b *DescriptorBuilder) Build() (plugin.Descriptor, error) {
	recorder := b.recorder
	data := append([]byte(nil), b.data...)
	format := b.format
	failure := b.err

	handler := plugin.HandlerFunc(func(ctx context.Context, req plugin.CaptureRequest) (*plugin.Screenshot, error) {
		recorder.record(req)
		if failure != nil {
			return nil, failure
		}
		return &plugin.Screenshot{Data: data, Format: format}, nil
	})

	return plugin.NewDescriptor(b.name, b.description, b.patterns, handler)
}

// MustBuild creates the descriptor and panics on error
func (b *DescriptorBuilder) MustBuild() plugin.Descriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// SampleIdentities maps built-in plugin names to *IDN? responses of
// instruments they support
func SampleIdentities() map[string][]string {
	return map[string][]string{
		"keysight-ivx": {
			"KEYSIGHT TECHNOLOGIES,DSO-X 2024A,MY00000001,02.50.2019022736",
			"KEYSIGHT TECHNOLOGIES,MSO-X 3104T,MY00000002,07.20.2017102615",
		},
		"rigol-1000z": {
			"RIGOL TECHNOLOGIES,DS1054Z,DS1ZA000000001,00.04.04.SP3",
			"RIGOL TECHNOLOGIES,MSO1104Z,DS1ZC000000002,00.04.04.SP4",
		},
		"rigol-2000": {
			"RIGOL TECHNOLOGIES,DS2072A,DS2D000000001,00.03.05",
		},
		"rs-hmo1000": {
			"Rohde&Schwarz,HMO1002,000000000,05.886",
		},
		"tektronix-2000": {
			"TEKTRONIX,TDS 2024B,C000001,CF:91.1CT FV:v22.01",
			"TEKTRONIX,TDS 2012C,C010002,CF:91.1CT FV:v24.26",
		},
		"siglent-sdm3000": {
			"Siglent Technologies,SDM3055,SDM35FAC1R0001,1.01.01.25",
		},
	}
}

// UnknownIdentities returns *IDN? responses no built-in plugin supports
func UnknownIdentities() []string {
	return []string{
		"AGILENT TECHNOLOGIES,34461A,MY00000000,A.02.14-02.40-02.14-00.49-01-01",
		"KEITHLEY INSTRUMENTS INC.,MODEL 2110,8012345,02.03-03-20",
		"FLUKE,8846A,0000000,08/02/10-11:53",
		"",
	}
}

// RandomIdentity builds an IEEE 488.2 style identity from random fields.
// The result never matches a built-in plugin.
func RandomIdentity(rng *rand.Rand) string {
	vendors := []string{"ACME", "Example Instruments", "NoName Labs"}
	fields := []string{
		vendors[rng.Intn(len(vendors))],
		randomToken(rng, 6),
		randomToken(rng, 10),
		randomToken(rng, 4),
	}
	return strings.Join(fields, ",")
}

func randomToken(rng *rand.Rand, n int) string {
	const alphabet = "abcdefghjkmnpqrstuvwxyz0123456789"
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return sb.String()
}
