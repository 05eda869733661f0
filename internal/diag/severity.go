package diag

import "strconv"

// Severity хранится в каждой диагностике, чтобы кэш восстанавливал её как есть.
// Рекомендательных проверок у валидатора нет: любая диагностика делает файл
// невалидным.
type Severity uint8

// SevError is set by New on every diagnostic.
const SevError Severity = 1

// String returns the label used by the short report format.
func (s Severity) String() string {
	if s == SevError {
		return "error"
	}
	return "severity(" + strconv.Itoa(int(s)) + ")"
}
