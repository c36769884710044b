// Package format turns raw snapshot numbers into display strings.
package format

import (
	"fmt"
	"math"
)

// NotAvailable is printed in place of a value that could not be measured.
const NotAvailable = "N/A"

var units = [...]string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count with power-of-1000 units. Values past PB
// stay in PB. Precision depends on the scaled value: >=100 no decimals,
// >=10 one decimal, otherwise two.
func FormatBytes(bytes uint64) string {
	if bytes == 0 {
		return "0 B"
	}

	tier := 0
	divisor := uint64(1)
	for rest := bytes; rest >= 1000 && tier < len(units)-1; rest /= 1000 {
		tier++
		divisor *= 1000
	}

	value := float64(bytes) / float64(divisor)
	unit := units[tier]
	switch {
	case value >= 100:
		return fmt.Sprintf("%.0f %s", value, unit)
	case value >= 10:
		return fmt.Sprintf("%.1f %s", value, unit)
	default:
		return fmt.Sprintf("%.2f %s", value, unit)
	}
}

// FormatSpeed renders a bytes-per-second figure.
func FormatSpeed(bytesPerSec uint64) string {
	return FormatBytes(bytesPerSec) + "/s"
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", value)
}

// MemoryPercent renders used/total as a percentage, or N/A when total is zero.
func MemoryPercent(used, total uint64) string {
	if total == 0 {
		return NotAvailable
	}
	return FormatPercent(float64(used) / float64(total) * 100)
}
