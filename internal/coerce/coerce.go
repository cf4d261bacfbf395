// Package coerce convierte valores JSON sin tipo (map[string]any) a los tipos
// del modelo con las mismas reglas que usa el panel de administración.
package coerce

import (
	"math"
	"strconv"
	"strings"
)

type float64er interface {
	Float64() (float64, error)
}

// String devuelve v si es un string; cualquier otro valor es "".
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Number acepta solo valores numéricos finitos. Los strings no cuentan.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64er:
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Numeric acepta números y strings numéricos completos ("10", " 2.5 ").
func Numeric(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return Number(v)
}

// Int64 acepta números enteros; 1.5 no es un id válido.
func Int64(v any) (int64, bool) {
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Truthy sigue la semántica de `!!v` en JavaScript.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64er:
		f, err := t.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	}
	return true
}

// IDString es la forma de texto de un id, sea número o string.
func IDString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := Int64(v); ok {
		return strconv.FormatInt(n, 10)
	}
	if f, ok := Number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// ParseFloat interpreta el prefijo numérico más largo de s, como parseFloat
// en el navegador: "19.99" y "19.99 USD" valen 19.99, "abc" no es número.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := numericPrefix(s)
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	// exponente opcional, solo si trae dígitos
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
