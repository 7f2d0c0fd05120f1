package util

import (
	"fmt"
	"math"
	"strconv"
)

// sizeUnits are the labels and byte sizes used by FormatSize, smallest first.
var sizeUnits = []struct {
	label string
	size  int64
}{
	{"Bytes", 1},
	{"KB", KB},
	{"MB", MB},
	{"GB", GB},
}

// FormatSize converts a byte count to a human-readable string.
// It picks the largest unit in Bytes/KB/MB/GB whose scaled value stays below 1024,
// rounds to two decimals and drops trailing zeros: 500 -> "500 Bytes",
// 2048 -> "2 KB", 1536 -> "1.5 KB". Sizes of 1024 GB and above stay in GB.
// Zero (and any negative input) renders as "0 Bytes".
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}

	last := len(sizeUnits) - 1
	unit := 0
	for unit < last && size >= sizeUnits[unit+1].size {
		unit++
	}

	scaled := float64(size) / float64(sizeUnits[unit].size)
	rounded := math.Round(scaled*100) / 100

	// Rounding can push a value like 1023.999 KB up to 1024.
	if rounded >= 1024 {
		switch {
		case unit < last:
			unit++
			rounded = math.Round(float64(size)/float64(sizeUnits[unit].size)*100) / 100
		case size < 1024*GB:
			rounded = math.Floor(scaled*100) / 100
		}
	}

	return fmt.Sprintf("%s %s", strconv.FormatFloat(rounded, 'f', -1, 64), sizeUnits[unit].label)
}

// Timeify converts seconds to "HH:MM:SS" format.
func Timeify(seconds int) string {
	hours := int(math.Floor(float64(seconds) / 3600))
	seconds %= 3600
	minutes := int(math.Floor(float64(seconds) / 60))
	seconds %= 60
	hours = int(math.Max(float64(hours), 0))
	minutes = int(math.Max(float64(minutes), 0))
	seconds = int(math.Max(float64(seconds), 0))
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
