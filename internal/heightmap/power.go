package heightmap

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownTier is returned when the desired point count has no entry in
// the decay tables.
var ErrUnknownTier = errors.New("heightmap: unsupported point count tier")

var blobPower = map[int]float64{
	1000:   0.93,
	2000:   0.95,
	5000:   0.97,
	10000:  0.98,
	20000:  0.99,
	30000:  0.991,
	40000:  0.993,
	50000:  0.994,
	60000:  0.995,
	70000:  0.9955,
	80000:  0.996,
	90000:  0.9964,
	100000: 0.9973,
}

var linePower = map[int]float64{
	1000:   0.75,
	2000:   0.77,
	5000:   0.79,
	10000:  0.81,
	20000:  0.82,
	30000:  0.83,
	40000:  0.84,
	50000:  0.86,
	60000:  0.87,
	70000:  0.88,
	80000:  0.91,
	90000:  0.92,
	100000: 0.93,
}

// Powers returns the blob and line decay exponents for a desired point
// count.
func Powers(points int) (blob, line float64, err error) {
	blob, ok := blobPower[points]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownTier, points)
	}
	return blob, linePower[points], nil
}

// Tiers lists the supported point counts in ascending order.
func Tiers() []int {
	return []int{1000, 2000, 5000, 10000, 20000, 30000, 40000, 50000, 60000, 70000, 80000, 90000, 100000}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
