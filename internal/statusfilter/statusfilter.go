// Package statusfilter - фильтр таблицы заявок по статусу (чекбоксы
// "Awaiting Bids", "Bid(s) Received", "Complete").
package statusfilter

import (
	"strings"

	"logistics/models"
)

// Labels - подписи чекбоксов в порядке отображения.
var Labels = []string{
	string(models.RequestAwaitingBids),
	string(models.RequestBidsReceived),
	string(models.RequestComplete),
}

// VisibleRows возвращает видимость каждой строки. Строка видна, если не
// отмечен ни один фильтр или её статус содержит хотя бы одну отмеченную
// подпись. Сравнение - вхождение подстроки с учётом регистра.
func VisibleRows(statuses []string, filters []string) []bool {
	visible := make([]bool, len(statuses))
	for i, status := range statuses {
		visible[i] = matches(status, filters)
	}
	return visible
}

func matches(status string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if strings.Contains(status, f) {
			return true
		}
	}
	return false
}

// Apply оставляет элементы, чей статус (status(item)) проходит фильтр.
func Apply[T any](items []T, filters []string, status func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(status(item), filters) {
			out = append(out, item)
		}
	}
	return out
}

// Checked отбрасывает пустые и неизвестные подписи, сохраняя порядок Labels.
func Checked(params []string) []string {
	var out []string
	for _, label := range Labels {
		for _, p := range params {
			if p == label {
				out = append(out, label)
				break
			}
		}
	}
	return out
}
