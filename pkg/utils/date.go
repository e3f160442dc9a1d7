package utils

import (
	"strings"
	"time"
)

// ParseDate interpreta uma data YYYY-MM-DD em UTC. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// SplitList separa uma lista "a,b,c" ignorando itens vazios
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}

	return items
}
