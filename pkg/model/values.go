package model

import (
	"fmt"
	"reflect"
)

// addresser is satisfied by coordinate types that pack into an address
// field, such as hw.Coord.
type addresser interface {
	Address() int
}

// toValues coerces an input value to field elements. Scalars become a
// single-element slice; slices of any integer kind pass element-wise.
func toValues(v any) ([]int64, error) {
	if a, ok := v.(addresser); ok {
		return []int64{int64(a.Address())}, nil
	}
	if n, ok := toInt64(v); ok {
		return []int64{n}, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]int64, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			n, ok := toInt64(rv.Index(i).Interface())
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrValueType, i, rv.Index(i).Interface())
			}
			out[i] = n
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrValueType, v)
}

// toInt64 coerces any integer-kinded value, including named enum types.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}
