package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "66999991111", NormalizePhone("5566999991111@c.us"))
	assert.Equal(t, "66999991111", NormalizePhone("+55 (66) 99999-1111"))
	assert.Equal(t, "12345", NormalizePhone("12-345"))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestParsePhone(t *testing.T) {
	phone, err := ParsePhone("(66) 99999-1111")
	require.NoError(t, err)
	assert.Equal(t, "66999991111", phone)

	_, err = ParsePhone("123")
	assert.True(t, errors.Is(err, ErrInvalidPhone))
}

func TestNormalizeChurnReason(t *testing.T) {
	cases := map[string]ChurnReason{
		"Financeiro":           ReasonFinancial,
		"muito caro":           ReasonFinancial,
		"falta de tempo":       ReasonTimeConstraint,
		"Lesão no joelho":      ReasonHealth,
		"atingiu o objetivo":   ReasonGoalReached,
		"insatisfeito":         ReasonDissatisfied,
		"foi pra concorrência": ReasonCompetitor,
		"Mudança de cidade":    ReasonRelocation,
		"":                     ReasonUnknown,
		"sei lá":               ReasonUnknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeChurnReason(raw), raw)
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierVeryHigh, TierFor(80))
	assert.Equal(t, TierHigh, TierFor(79))
	assert.Equal(t, TierHigh, TierFor(65))
	assert.Equal(t, TierMedium, TierFor(50))
	assert.Equal(t, TierLow, TierFor(35))
	assert.Equal(t, TierVeryLow, TierFor(34))
}

func TestPickWinner(t *testing.T) {
	t.Run("highest rate wins", func(t *testing.T) {
		variants := []Variant{
			{ID: "a", Sends: 100, Conversions: 10},
			{ID: "b", Sends: 100, Conversions: 20},
		}
		assert.Equal(t, 1, PickWinner(variants))
	})
	t.Run("tie keeps first declared", func(t *testing.T) {
		variants := []Variant{
			{ID: "a", Sends: 50, Conversions: 5},
			{ID: "b", Sends: 100, Conversions: 10},
		}
		assert.Equal(t, 0, PickWinner(variants))
	})
	t.Run("no sends is a zero rate", func(t *testing.T) {
		variants := []Variant{{ID: "a"}, {ID: "b"}}
		assert.Equal(t, 0, PickWinner(variants))
		assert.Equal(t, 0.0, variants[0].ConversionRate())
	})
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, -1, PickWinner(nil))
	})
}

func TestStageNext(t *testing.T) {
	next, ok := StageOpening.Next()
	assert.True(t, ok)
	assert.Equal(t, StageReinforcement, next)
	next, ok = StageReinforcement.Next()
	assert.True(t, ok)
	assert.Equal(t, StageUrgency, next)
	_, ok = StageUrgency.Next()
	assert.False(t, ok)
	assert.True(t, StageCancelled.Terminal())
}
