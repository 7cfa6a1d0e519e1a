package output

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// intensity keeps quantized channels inside [0, 255]
var intensity = core.NewInterval(0.000, 0.999)

// LinearToGamma applies a gamma 2 transform to a linear channel value
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToByte converts a linear channel value to an integer in [0, 255]
func ToByte(linear float64) int {
	return int(256 * intensity.Clamp(LinearToGamma(linear)))
}

// ToneMap converts a linear color to gamma corrected 8-bit channels
func ToneMap(c core.Color) (r, g, b int) {
	return ToByte(c.X), ToByte(c.Y), ToByte(c.Z)
}
