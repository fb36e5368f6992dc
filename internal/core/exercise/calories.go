package exercise

import (
	"math"

	"mood-meal/internal/pkg/common"
)

// DefaultWeightKg 未提供體重時的估算基準
const DefaultWeightKg = 60

// mets 支援的運動項目與代謝當量
var mets = map[string]float64{
	"ウォーキング": 3.5,
	"ジョギング":  7.0,
	"サイクリング": 6.8,
	"筋トレ":    5.0,
}

// Supported 列出支援的運動項目
func Supported() []string {
	names := make([]string, 0, len(mets))
	for name := range mets {
		names = append(names, name)
	}
	return names
}

// Calories 估算運動消耗的熱量（kcal），取一位小數。
// 公式為 METs × 體重(kg) × 時間(分)/60；體重未提供時以 60kg 估算。
func Calories(name string, minutes, weightKg float64) (float64, error) {
	met, ok := mets[name]
	if !ok {
		return 0, common.ErrUnknownExercise
	}
	if minutes <= 0 {
		return 0, common.ErrInvalidRequest
	}
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}

	kcal := met * weightKg * minutes / 60
	return math.Round(kcal*10) / 10, nil
}
