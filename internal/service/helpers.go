package service

import "strconv"

// FormatPercent переводит долю [0,1] в проценты с одним знаком: 0.8734 -> "87.3%".
func FormatPercent(score float64) string {
	return strconv.FormatFloat(score*100, 'f', 1, 64) + "%"
}
