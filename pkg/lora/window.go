package lora

import "math"

func cos2pi(x float64) float64 {
	return math.Cos(2 * math.Pi * x)
}
