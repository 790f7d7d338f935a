package spatial

import "math"

func tan32(v float32) float32 {
	return float32(math.Tan(float64(v)))
}
