package service

import "strings"

// summaryBulletMarker разделяет пункты в review_summary.
const summaryBulletMarker = "* "

// FormatSummary превращает текст сводки в список пунктов.
// Текст режется по маркеру "* ", пустые после trim куски отбрасываются,
// порядок сохраняется. Текст без маркеров дает один пункт.
func FormatSummary(text string) []string {
	items := make([]string, 0)
	for _, segment := range strings.Split(text, summaryBulletMarker) {
		item := strings.TrimSpace(segment)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
