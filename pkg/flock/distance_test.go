package flock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceType_Transform(t *testing.T) {
	tests := []struct {
		dt   DistanceType
		d    float32
		want float32
	}{
		{Linear, 0, 0},
		{Linear, 2, 2},
		{InverseLinear, 0, 0},
		{InverseLinear, 4, 0.25},
		{Quadratic, 2, 4},
		{Quadratic, 0, 0},
		{InverseQuadratic, 0, 0},
		{InverseQuadratic, 2, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dt.Transform(tt.d), "f(%v, %v)", tt.d, tt.dt)
		})
	}
}

func TestDistanceType_Text(t *testing.T) {
	for _, dt := range []DistanceType{Linear, InverseLinear, Quadratic, InverseQuadratic} {
		text, err := dt.MarshalText()
		require.NoError(t, err)

		var back DistanceType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, dt, back)
	}

	_, err := ParseDistanceType("cubic")
	assert.Error(t, err)

	_, err = DistanceType(9).MarshalText()
	assert.Error(t, err)
}

func TestTerm_JSON(t *testing.T) {
	var term Term
	require.NoError(t, json.Unmarshal([]byte(`{"weight":0.5,"distance":"inverse_quadratic"}`), &term))
	assert.Equal(t, Term{Weight: 0.5, Distance: InverseQuadratic}, term)
}
