package plugin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeQuerier returns a canned identity and records how it was called
type fakeQuerier struct {
	identity string
	err      error
	calls    int
	address  string
	timeout  time.Duration
}

func (q *fakeQuerier) QueryIdentity(ctx context.Context, address string, timeout time.Duration) (string, error) {
	q.calls++
	q.address = address
	q.timeout = timeout
	return q.identity, q.err
}

// newExampleSelector builds the two plugin registry used by the scenarios:
// "a" matches FOO, "b" matches FOO and BAR
func newExampleSelector(t *testing.T, q IdentityQuerier) *Selector {
	t.Helper()
	reg := newTestRegistry(t,
		mustDescriptor(t, "a", "FOO"),
		mustDescriptor(t, "b", "FOO BAR"),
	)
	return NewSelector(reg, NewRegexpMatcher(), q, zerolog.Nop())
}

// TestSelector_Autodetect_Scenarios tests autodetection against the example registry
func TestSelector_Autodetect_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		identity   string
		wantPlugin string
		wantErr    error
		wantScores []MatchResult
	}{
		{
			name:       "MoreSpecificPluginWins",
			identity:   "FOO BAR BAZ",
			wantPlugin: "b",
			wantScores: []MatchResult{{Name: "a", Score: 1}, {Name: "b", Score: 2}},
		},
		{
			name:       "OnlyGenericPluginMatches",
			identity:   "FOO",
			wantPlugin: "a",
			wantScores: []MatchResult{{Name: "a", Score: 1}, {Name: "b", Score: 1}},
		},
		{
			name:     "NothingMatches",
			identity: "QUX",
			wantErr:  ErrAutodetectFailed,
		},
		{
			name:       "TrailingNewlineIsStripped",
			identity:   "FOO BAR\n",
			wantPlugin: "b",
			wantScores: []MatchResult{{Name: "a", Score: 1}, {Name: "b", Score: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQuerier{identity: tt.identity}
			s := newExampleSelector(t, q)

			sel, err := s.Select(context.Background(), SelectRequest{Address: "10.0.0.5", Timeout: 2 * time.Second})

			assert.Equal(t, 1, q.calls, "Identity should be queried exactly once")
			assert.Equal(t, "10.0.0.5", q.address)
			assert.Equal(t, 2*time.Second, q.timeout)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sel)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPlugin, sel.Descriptor.Name())
			assert.True(t, sel.Autodetected)
			assert.Equal(t, tt.wantScores, sel.Scores)
		})
	}
}

// TestSelector_Autodetect_IdentityIsNormalized tests that the selection carries the stripped identity
func TestSelector_Autodetect_IdentityIsNormalized(t *testing.T) {
	s := newExampleSelector(t, &fakeQuerier{identity: "FOO,BAR\r\n"})

	sel, err := s.Select(context.Background(), SelectRequest{Address: "scope"})
	require.NoError(t, err)
	assert.Equal(t, "FOO,BAR", sel.Identity)
}

// TestSelector_ExplicitName_SkipsIdentityQuery tests explicit plugin selection
func TestSelector_ExplicitName_SkipsIdentityQuery(t *testing.T) {
	q := &fakeQuerier{identity: "FOO BAR BAZ"}
	s := newExampleSelector(t, q)

	sel, err := s.Select(context.Background(), SelectRequest{Address: "scope", PluginName: "a"})
	require.NoError(t, err)

	assert.Equal(t, "a", sel.Descriptor.Name())
	assert.False(t, sel.Autodetected)
	assert.Empty(t, sel.Identity)
	assert.Zero(t, q.calls, "Explicit selection must not contact the instrument")
}

// TestSelector_ExplicitName_Unknown tests the lookup error for unregistered names
func TestSelector_ExplicitName_Unknown(t *testing.T) {
	q := &fakeQuerier{identity: "FOO"}
	s := newExampleSelector(t, q)

	sel, err := s.Select(context.Background(), SelectRequest{Address: "scope", PluginName: "zzz"})

	assert.Nil(t, sel)
	assert.ErrorIs(t, err, ErrUnknownPlugin)
	var unknown *UnknownPluginError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "zzz", unknown.Name)
	assert.Contains(t, err.Error(), "zzz")
	assert.Zero(t, q.calls, "Unknown plugin must not contact the instrument")
}

// TestSelector_Autodetect_QueryFailure tests propagation of transport failures
func TestSelector_Autodetect_QueryFailure(t *testing.T) {
	transportErr := errors.New("connection refused")
	s := newExampleSelector(t, &fakeQuerier{err: transportErr})

	sel, err := s.Select(context.Background(), SelectRequest{Address: "scope"})

	assert.Nil(t, sel)
	assert.ErrorIs(t, err, ErrIdentityQuery)
	assert.ErrorIs(t, err, transportErr)
}

// TestSelector_Autodetect_WithoutQuerier tests the guard for a selector without transport
func TestSelector_Autodetect_WithoutQuerier(t *testing.T) {
	reg := newTestRegistry(t, mustDescriptor(t, "a", "FOO"))
	s := NewSelector(reg, nil, nil, zerolog.Nop())

	_, err := s.Select(context.Background(), SelectRequest{Address: "scope"})
	assert.ErrorIs(t, err, ErrIdentityQuery)
}

// TestRank_TiesGoToFirstRegistered tests the tie-break rule
func TestRank_TiesGoToFirstRegistered(t *testing.T) {
	descriptors := []Descriptor{
		mustDescriptor(t, "none", ""),
		mustDescriptor(t, "first", "RIGOL"),
		mustDescriptor(t, "second", "TECHNOLOGIES"),
		mustDescriptor(t, "third", "RIGOL"),
	}

	scores, winner := Rank("RIGOL TECHNOLOGIES", descriptors, NewRegexpMatcher())

	assert.Equal(t, 1, winner)
	assert.Equal(t, []MatchResult{
		{Name: "none", Score: 0},
		{Name: "first", Score: 1},
		{Name: "second", Score: 1},
		{Name: "third", Score: 1},
	}, scores)
}

// TestRank_EmptyRegistry tests ranking with nothing registered
func TestRank_EmptyRegistry(t *testing.T) {
	scores, winner := Rank("anything", nil, NewRegexpMatcher())
	assert.Empty(t, scores)
	assert.Equal(t, -1, winner)
}

// Property-based tests using rapid

// TestRank_PropertyBased_WinnerHasHighestScoreAndLowestIndex tests that the
// winner always carries the maximum score and precedes every other plugin with that score
func TestRank_PropertyBased_WinnerHasHighestScoreAndLowestIndex(t *testing.T) {
	m := NewRegexpMatcher()

	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 8).Draw(t, "count")
		descriptors := make([]Descriptor, 0, count)
		for i := 0; i < count; i++ {
			fragments := rapid.SliceOfN(rapid.SampledFrom([]string{"FOO", "BAR", "BAZ", "QUX"}), 0, 4).Draw(t, "fragments")
			d, err := NewDescriptor(fmt.Sprintf("p%d", i), "", fragments, nopHandler)
			require.NoError(t, err)
			descriptors = append(descriptors, d)
		}
		identity := rapid.SampledFrom([]string{"FOO", "FOO BAR", "BAR BAZ QUX", "NONE", ""}).Draw(t, "identity")

		scores, winner := Rank(identity, descriptors, m)
		require.Len(t, scores, count)

		best := 0
		for _, r := range scores {
			if r.Score > best {
				best = r.Score
			}
		}

		if best == 0 {
			assert.Equal(t, -1, winner, "No positive score means no winner")
			return
		}

		require.GreaterOrEqual(t, winner, 0)
		assert.Equal(t, best, scores[winner].Score, "Winner should hold the best score")
		for i := 0; i < winner; i++ {
			assert.Less(t, scores[i].Score, best, "Earlier plugins must score lower than the winner")
		}
	})
}
