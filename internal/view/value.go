package view

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"time"
)

// Text renders a field value the way the search matcher sees it.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	if _, ok := number(v); ok {
		return fmt.Sprint(v)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// IsScalar reports whether v can serve as a row identifier: a string, a bool
// or a number.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	_, ok := number(v)
	return ok
}

// Key returns a canonical map key for an identifier value such that
// Key(a) == Key(b) exactly when Equal(a, b). ok is false for values that
// cannot be identifiers.
func Key(v any) (key string, ok bool) {
	if n, isNum := number(v); isNum {
		r, _ := n.Rat(nil)
		return "n:" + r.RatString(), true
	}
	switch x := v.(type) {
	case string:
		return "s:" + x, true
	case bool:
		return "b:" + strconv.FormatBool(x), true
	}
	return "", false
}

// Equal compares two identifier values by their native equality. Numbers of
// any Go kind (and json.Number) compare by value; a number never equals a
// string, even when their text forms match.
func Equal(a, b any) bool {
	x, aNum := number(a)
	y, bNum := number(b)
	if aNum || bNum {
		return aNum && bNum && x.Cmp(y) == 0
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// number converts any numeric kind to an exact big.Float. NaN and infinities
// are not numbers for identity purposes.
func number(v any) (*big.Float, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return new(big.Float).SetInt64(i), true
		}
		f, err := x.Float64()
		if err != nil {
			return nil, false
		}
		return finite(f)
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Float).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Float).SetUint64(rv.Uint()), true
	}
	return nil, false
}

func finite(f float64) (*big.Float, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return big.NewFloat(f), true
}
