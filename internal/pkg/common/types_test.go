package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAllergies(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "whitespace only", raw: "   ", want: nil},
		{name: "single", raw: "egg", want: []string{"egg"}},
		{name: "trims entries", raw: " egg , milk ,peanut", want: []string{"egg", "milk", "peanut"}},
		{name: "drops empty entries", raw: "egg,,milk,", want: []string{"egg", "milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitAllergies(tt.raw))
		})
	}
}

func TestSuggestionCacheKey(t *testing.T) {
	assert.Equal(t, "疲れた___egg,milk", SuggestionCacheKey(" 疲れた ", []string{"egg", "milk"}))
	assert.Equal(t, "疲れた___", SuggestionCacheKey("疲れた", nil))

	// 過敏原順序不同視為不同鍵
	assert.NotEqual(t,
		SuggestionCacheKey("疲れた", []string{"egg", "milk"}),
		SuggestionCacheKey("疲れた", []string{"milk", "egg"}),
	)
}

func TestCustomErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: upstream down", ErrAIServiceError)
	assert.ErrorIs(t, wrapped, ErrAIServiceError)

	var custom *CustomError
	assert.ErrorAs(t, wrapped, &custom)
	assert.Equal(t, "AI_SERVICE_ERROR", custom.Code)
	assert.Equal(t, 503, custom.Status)
}

func TestCustomErrorUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewError(ErrCodeGatewayTimeout, "網關超時", 504, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "timeout", err.Error())
}
