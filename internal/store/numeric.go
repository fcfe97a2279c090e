package store

import (
	"encoding/json"
	"math"
)

// AsInt coerces a partial-update field value to int. JSON-decoded maps
// carry numbers as float64, so both Go ints and integral floats are
// accepted; anything fractional or non-numeric is not.
func AsInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// AsFloat coerces a partial-update field value to float64, accepting
// the same numeric types as AsInt.
func AsFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
