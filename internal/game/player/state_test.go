package player

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewState(t *testing.T) {
	s := NewState(0)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 0, s.StepsTaken())
	assert.Empty(t, s.Summary().Path)
}

func TestStateIDsAreDistinct(t *testing.T) {
	assert.NotEqual(t, NewState(0).ID(), NewState(0).ID())
}

func TestRecordStep(t *testing.T) {
	s := NewState(0)
	require.NoError(t, s.RecordStep("Bridge"))
	require.NoError(t, s.RecordStep("Lab"))

	sum := s.Summary()
	assert.Equal(t, 2, sum.StepsTaken)
	assert.Equal(t, []string{"Bridge", "Lab"}, sum.Path)
}

func TestRecordStep_PathLimit(t *testing.T) {
	s := NewState(2)
	require.NoError(t, s.RecordStep("Bridge"))
	require.NoError(t, s.RecordStep("Lab"))

	err := s.RecordStep("Cargo")
	assert.ErrorIs(t, err, ErrPathLimit)
	assert.Equal(t, 2, s.StepsTaken(), "rejected step must not change state")
	assert.Equal(t, []string{"Bridge", "Lab"}, s.Summary().Path)
}

func TestSummary_CopiesPath(t *testing.T) {
	s := NewState(0)
	require.NoError(t, s.RecordStep("Bridge"))

	sum := s.Summary()
	sum.Path[0] = "Holodeck"
	assert.Equal(t, []string{"Bridge"}, s.Summary().Path)
}

// Property: after n accepted steps, StepsTaken == n and the path replays the
// recorded rooms in order.
func TestPropertyStepMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "n")
		s := NewState(0)
		var want []string
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("Room%d", i)
			if err := s.RecordStep(name); err != nil {
				t.Fatalf("unbounded state rejected step %d: %v", i, err)
			}
			want = append(want, name)
		}
		sum := s.Summary()
		if sum.StepsTaken != n {
			t.Fatalf("StepsTaken = %d, want %d", sum.StepsTaken, n)
		}
		if len(sum.Path) != n {
			t.Fatalf("len(Path) = %d, want %d", len(sum.Path), n)
		}
		for i := range want {
			if sum.Path[i] != want[i] {
				t.Fatalf("Path[%d] = %q, want %q", i, sum.Path[i], want[i])
			}
		}
	})
}
