package geo

import (
	"hash/fnv"
	"strconv"
)

// Jitter derives a deterministic pseudo-random value in [-1, 1) from a
// coordinate pair and a salt. The same inputs always produce the same
// output, which keeps estimated values and grid jitter reproducible
// across processes and restarts.
//
// The hash input is the coordinates formatted to 4 decimal places
// (~11 m), so points that share a rounded position share jitter.
func Jitter(lat, lng float64, salt string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatFloat(round4(lat), 'f', 4, 64)))
	_, _ = h.Write([]byte{','})
	_, _ = h.Write([]byte(strconv.FormatFloat(round4(lng), 'f', 4, 64)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(salt))

	// Map the top 53 bits onto [0,1), then shift to [-1,1).
	unit := float64(h.Sum64()>>11) / float64(1<<53)
	return unit*2 - 1
}

// JitterUnit is like Jitter but maps into [0, 1).
func JitterUnit(lat, lng float64, salt string) float64 {
	return (Jitter(lat, lng, salt) + 1) / 2
}

func round4(v float64) float64 {
	return float64(int64(v*10000+copysignHalf(v))) / 10000
}

func copysignHalf(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}

// CacheKey returns the canonical cache key for a coordinate pair, rounded
// to 4 decimal places. Lookups within ~11 m of each other share a key.
func CacheKey(lat, lng float64) string {
	return strconv.FormatFloat(round4(lat), 'f', 4, 64) + "," +
		strconv.FormatFloat(round4(lng), 'f', 4, 64)
}
