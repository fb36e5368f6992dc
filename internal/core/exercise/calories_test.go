package exercise

import (
	"testing"

	"mood-meal/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalories(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
		minutes  float64
		weight   float64
		want     float64
	}{
		{
			name:     "walking one hour default weight",
			exercise: "ウォーキング",
			minutes:  60,
			want:     210,
		},
		{
			name:     "jogging half hour default weight",
			exercise: "ジョギング",
			minutes:  30,
			want:     210,
		},
		{
			name:     "cycling rounds to one decimal",
			exercise: "サイクリング",
			minutes:  25,
			want:     170,
		},
		{
			name:     "strength training custom weight",
			exercise: "筋トレ",
			minutes:  45,
			weight:   80,
			want:     300,
		},
		{
			name:     "fractional result",
			exercise: "ウォーキング",
			minutes:  10,
			want:     35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calories(tt.exercise, tt.minutes, tt.weight)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCaloriesUnknownExercise(t *testing.T) {
	_, err := Calories("水泳", 30, 0)
	assert.ErrorIs(t, err, common.ErrUnknownExercise)
}

func TestCaloriesInvalidMinutes(t *testing.T) {
	_, err := Calories("ウォーキング", 0, 0)
	assert.ErrorIs(t, err, common.ErrInvalidRequest)

	_, err = Calories("ウォーキング", -5, 0)
	assert.ErrorIs(t, err, common.ErrInvalidRequest)
}

func TestSupported(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"ウォーキング", "ジョギング", "サイクリング", "筋トレ"},
		Supported(),
	)
}
