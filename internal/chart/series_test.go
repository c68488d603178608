package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PreservesLengthAndOrder(t *testing.T) {
	points := []TimeSeriesPoint{
		{TimeInterval: "2023-05-19", Units: Float(1)},
		{TimeInterval: "2023-05-20"},
		{TimeInterval: "2023-05-21", Units: Float(3)},
	}

	out := Normalize(points, SevenDays)

	require.Len(t, out, len(points))
	assert.Equal(t, "05/19", out[0].TimeLabel)
	assert.Equal(t, "05/20", out[1].TimeLabel)
	assert.Equal(t, "05/21", out[2].TimeLabel)
	for i := range points {
		assert.Equal(t, points[i].TimeInterval, out[i].TimeInterval)
	}
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(nil, Today))
	assert.Empty(t, Normalize([]TimeSeriesPoint{}, Today))
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	points := []TimeSeriesPoint{{TimeInterval: "09:00", Orders: Float(2)}}
	out := Normalize(points, Today)
	out[0].TimeInterval = "changed"

	assert.Equal(t, "09:00", points[0].TimeInterval)
}

func TestTimeSeriesPoint_UnmarshalJSON(t *testing.T) {
	raw := `{"timeInterval":"2023-W21","units":4,"revenue":null,"amount":"oops","region":"KL","visitors":17,"timeLabel":"ignored"}`

	var p TimeSeriesPoint
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "2023-W21", p.TimeInterval)
	require.NotNil(t, p.Units)
	assert.Equal(t, 4.0, *p.Units)
	assert.Nil(t, p.Revenue)
	assert.Nil(t, p.Amount)
	assert.Nil(t, p.Orders)
	assert.Equal(t, "oops", p.Extra["amount"])
	assert.Equal(t, "KL", p.Extra["region"])
	assert.Equal(t, 17.0, p.Extra["visitors"])
	assert.NotContains(t, p.Extra, "timeLabel")
}

func TestTimeSeriesPoint_UnmarshalJSON_MissingInterval(t *testing.T) {
	var p TimeSeriesPoint
	err := json.Unmarshal([]byte(`{"units":1}`), &p)
	assert.ErrorIs(t, err, ErrMissingInterval)
}

func TestDisplayPoint_MarshalJSON_PassesExtraThrough(t *testing.T) {
	p := DisplayPoint{
		TimeSeriesPoint: TimeSeriesPoint{
			TimeInterval: "14:00",
			Orders:       Float(3),
			Extra:        map[string]any{"channel": "shopee"},
		},
		TimeLabel: "14",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "14:00", decoded["timeInterval"])
	assert.Equal(t, "14", decoded["timeLabel"])
	assert.Equal(t, 3.0, decoded["orders"])
	assert.Equal(t, "shopee", decoded["channel"])
	assert.NotContains(t, decoded, "units", "absent metrics are omitted")
}
