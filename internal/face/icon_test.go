package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := map[int]IconID{
		200: IconStorm,
		232: IconStorm,
		300: IconLightRain,
		321: IconLightRain,
		500: IconRain,
		504: IconRain,
		511: IconSnow,
		520: IconRain,
		531: IconRain,
		600: IconSnow,
		622: IconSnow,
		701: IconFog,
		761: IconFog,
		781: IconStorm,
		800: IconClear,
		801: IconLightClouds,
		802: IconCloudy,
		803: IconCloudy,
		804: IconCloudy,
	}
	for code, want := range cases {
		assert.Equal(t, want, Classify(code), "code %d", code)
	}
}

func TestClassifyOutsideRanges(t *testing.T) {
	for _, code := range []int{
		-1, 0, 150, 199, 233, 299, 322, 499, 505, 510, 512, 519, 532,
		599, 623, 700, 762, 780, 782, 799, 805, 1000,
	} {
		assert.Equal(t, IconNone, Classify(code), "code %d", code)
	}
}

func TestClassifyEveryCodeInRange(t *testing.T) {
	ranges := []struct {
		lo, hi int
		want   IconID
	}{
		{200, 232, IconStorm},
		{300, 321, IconLightRain},
		{500, 504, IconRain},
		{520, 531, IconRain},
		{600, 622, IconSnow},
		{701, 761, IconFog},
		{802, 804, IconCloudy},
	}
	for _, r := range ranges {
		for code := r.lo; code <= r.hi; code++ {
			assert.Equal(t, r.want, Classify(code), "code %d", code)
		}
	}
}

func TestStaticAssetsScalesIcons(t *testing.T) {
	assets := StaticAssets{BaseSize: 50}

	asset, ok := assets.Resolve(IconClear)
	assert.True(t, ok)
	assert.Equal(t, Asset{Name: "ic_clear", Width: 60, Height: 60}, asset)

	_, ok = assets.Resolve(IconNone)
	assert.False(t, ok)
}
