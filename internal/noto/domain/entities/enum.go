// Package entities содержит доменные сущности Noto.
package entities

// parseEnum ищет s среди допустимых значений. Сравнение регистрозависимое.
func parseEnum[T ~string](s string, values []T) (T, bool) {
	for _, v := range values {
		if string(v) == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}
