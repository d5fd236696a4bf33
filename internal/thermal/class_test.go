package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveClass_Table(t *testing.T) {
	want := map[HeatClass]float64{
		ClassA: 65,
		ClassE: 80,
		ClassB: 90,
		ClassF: 110,
		ClassH: 135,
	}
	for class, rise := range want {
		t.Run(string(class), func(t *testing.T) {
			l, err := ResolveClass(class)
			require.NoError(t, err)
			assert.Equal(t, rise, l.RiseLimit)
			assert.Equal(t, NominalAmbientC+rise, l.MaxTemperature)
		})
	}
}

func TestResolveClass_UnknownFails(t *testing.T) {
	l, err := ResolveClass("Z")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Zero(t, l)
	assert.Contains(t, err.Error(), `"Z"`)
}

func TestParseHeatClass(t *testing.T) {
	c, err := ParseHeatClass(" f ")
	require.NoError(t, err)
	assert.Equal(t, ClassF, c)

	_, err = ParseHeatClass("")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = ParseHeatClass("C")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLossFactor(t *testing.T) {
	cases := []struct {
		speed float64
		want  float64
	}{
		{0, 0.5},
		{750, 0.5},
		{999.99, 0.5},
		{1000, 0.7},
		{1500, 0.7},
		{3000, 0.7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LossFactor(tc.speed), "speed=%v", tc.speed)
	}
}
