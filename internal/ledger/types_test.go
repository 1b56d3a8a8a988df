package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/ledger"
)

func TestPacksData_Counts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"number", `3`, 3},
		{"numeric string", `"4"`, 4},
		{"float truncates", `2.9`, 2},
		{"null", `null`, 0},
		{"int32 max", `2147483647`, 2147483647},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data ledger.PacksData
			require.NoError(t, json.Unmarshal([]byte(`{"totalPacksByType":{"normal":`+tt.raw+`}}`), &data))
			assert.Equal(t, map[string]int{"normal": tt.want}, data.Counts())
		})
	}
}

func TestPacksData_RejectsBadCounts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"NaN string", `"NaN"`},
		{"Inf string", `"Inf"`},
		{"negative Inf string", `"-Infinity"`},
		{"huge number", `1e30`},
		{"huge string", `"1e30"`},
		{"past int32", `2147483648`},
		{"below int32", `-2147483649`},
		{"word", `"many"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data ledger.PacksData
			err := json.Unmarshal([]byte(`{"totalPacksByType":{"normal":`+tt.raw+`}}`), &data)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
