// Package util provides common utilities and constants for Encrypty.
//
// This package contains:
//   - Size constants (KB, MB, GB) using a 1024 base
//   - Color constants for UI status banners
//   - Human-readable size and duration formatting (FormatSize, Timeify)
//
// All utilities are stateless and thread-safe.
package util

import "image/color"

// Size constants for byte calculations.
// Labels follow the selection list ("KB", "MB", "GB") even though the base is 1024.
const (
	KB = 1 << 10 // 1024
	MB = 1 << 20 // 1,048,576
	GB = 1 << 30 // 1,073,741,824
)

// Color constants for UI status banners
var (
	RED   = color.RGBA{0xdc, 0x35, 0x45, 0xff}
	GREEN = color.RGBA{0x28, 0xa7, 0x45, 0xff}
	GRAY  = color.RGBA{0x88, 0x88, 0x88, 0xff}
)
