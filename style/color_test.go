package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#000", color.RGBA{A: 0xff}},
		{"#FFF", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}},
		{"#33669980", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0x80}},
		{" transparent ", Transparent},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "#12", "#12345", "#gggggg", "red"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func Test_HexColor(t *testing.T) {
	assert.Equal(t, "#336699", HexColor(color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}))
	assert.Equal(t, "#33669980", HexColor(color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0x80}))
	assert.Equal(t, "#00000000", HexColor(Transparent))

	c, err := ParseColor(HexColor(Transparent))
	require.NoError(t, err)
	assert.Equal(t, Transparent, c)
}

func Test_ContrastRatio(t *testing.T) {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	assert.InDelta(t, 21, ContrastRatio(black, white), 1e-9)
	assert.InDelta(t, 21, ContrastRatio(white, black), 1e-9)
	assert.InDelta(t, 1, ContrastRatio(white, white), 1e-9)

	// a transparent foreground disappears into the background
	assert.InDelta(t, 1, ContrastRatio(Transparent, white), 1e-9)

	grey := color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff}
	assert.InDelta(t, 4.48, ContrastRatio(grey, white), 0.01)
}
