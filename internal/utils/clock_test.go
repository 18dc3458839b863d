package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		input    string
		expected TimeOfDay
		wantErr  bool
	}{
		{input: "08:00", expected: 480},
		{input: "8:05", expected: 485},
		{input: "23:59", expected: 1439},
		{input: "24:30", expected: 1470},
		{input: "0800", wantErr: true},
		{input: "08:60", wantErr: true},
		{input: "ab:10", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			actual, err := ParseTimeOfDay(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestAddMinutes(t *testing.T) {
	assert.Equal(t, "08:45", MustParseTimeOfDay("08:00").AddMinutes(45).String())
	assert.Equal(t, "13:00", MustParseTimeOfDay("11:30").AddMinutes(90).String())
}

func TestRoundUp(t *testing.T) {
	assert.Equal(t, "08:05", MustParseTimeOfDay("08:01").RoundUp().String())
	assert.Equal(t, "08:05", MustParseTimeOfDay("08:05").RoundUp().String())
	assert.Equal(t, "09:00", MustParseTimeOfDay("08:56").RoundUp().String())
}

func TestTimeOfDayJSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Start TimeOfDay `json:"start"`
	}{Start: MustParseTimeOfDay("09:20")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"09:20"}`, string(payload))

	var decoded struct {
		Start TimeOfDay `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"14:35"}`), &decoded))
	assert.Equal(t, TimeOfDay(14*60+35), decoded.Start)
}
