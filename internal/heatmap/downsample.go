package heatmap

// Downsample caps a point sequence at max points using fixed-stride
// selection: indices floor(0), floor(stride), floor(2*stride), ... with a
// real-valued stride of len/max. Deterministic and order-preserving;
// identical input always yields an identical output sequence.
func Downsample(points []Point, max int) []Point {
	if max <= 0 {
		return nil
	}
	if len(points) <= max {
		return points
	}

	stride := float64(len(points)) / float64(max)
	out := make([]Point, 0, max)
	for i := 0; i < max; i++ {
		idx := int(float64(i) * stride)
		if idx >= len(points) {
			break
		}
		out = append(out, points[idx])
	}
	return out
}
