package orderstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationTableIsBijective(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range All() {
		label := s.Label()
		require.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
		assert.Equal(t, s, FromTranslation(label))

		parsed, err := Parse(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Len(t, All(), 11)
}

func TestFromTranslation(t *testing.T) {
	assert.Equal(t, Pending, FromTranslation("Pendente"))
	assert.Equal(t, AwaitingPickup, FromTranslation("Aguardando retirada"))
	assert.Equal(t, Pending, FromTranslation("not a real status"))
	assert.Equal(t, Pending, FromTranslation("pendente"))
	assert.Equal(t, Pending, FromTranslation(""))

	_, ok := LookupLabel("not a real status")
	assert.False(t, ok)
}

func TestParseRejectsUnknownCode(t *testing.T) {
	_, err := Parse("PENDING")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTransitionIsUnrestricted(t *testing.T) {
	for _, from := range All() {
		for _, to := range All() {
			got, err := Transition(from, to)
			require.NoError(t, err)
			assert.Equal(t, to, got)
		}
	}

	got, err := Transition(Paid, Status("bogus"))
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Equal(t, Paid, got)
}

func TestPreparationTarget(t *testing.T) {
	assert.Equal(t, Packed, PreparationTarget(true))
	assert.Equal(t, AwaitingPickup, PreparationTarget(false))
}

func TestProgressStep(t *testing.T) {
	tests := map[Status]int{
		Pending:         0,
		AwaitingPayment: 0,
		Paid:            1,
		Packed:          2,
		AwaitingPickup:  2,
		Delivered:       3,
		Canceled:        -1,
		Refunded:        -1,
	}
	for s, want := range tests {
		assert.Equal(t, want, ProgressStep(s), s.String())
	}
	assert.Equal(t, []Status{Pending, Paid, Packed, Delivered}, ProgressSteps())
}

func TestAwaitingPreparation(t *testing.T) {
	for _, s := range PreparationQueue() {
		assert.True(t, AwaitingPreparation(s))
	}
	assert.False(t, AwaitingPreparation(Packed))
	assert.False(t, AwaitingPreparation(Canceled))
}
