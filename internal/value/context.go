package value

import (
	"errors"
	"reflect"
	"strconv"
)

// ErrInvalidContext is returned by every render call whose context is not a
// structured value.
var ErrInvalidContext = errors.New("weft: context must be a structured value (map, slice, array, or struct)")

// CheckContext validates a render context. Maps, slices, arrays, structs and
// non-nil pointers to those are structured; everything else, including nil,
// is rejected on every call.
func CheckContext(ctx any) error {
	if ctx == nil {
		return ErrInvalidContext
	}
	rv := reflect.ValueOf(ctx)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrInvalidContext
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return nil
	default:
		return ErrInvalidContext
	}
}

// Resolve looks key up in a structured context and returns its output text.
// A missing key, an out-of-range index, or a nil value all resolve to the
// empty string. The context must already have passed CheckContext.
func Resolve(ctx any, key string) string {
	rv := reflect.ValueOf(ctx)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		kv, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return ""
		}
		elem := rv.MapIndex(kv)
		if !elem.IsValid() {
			return ""
		}
		return Stringify(elem.Interface())
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return ""
		}
		return Stringify(rv.Index(i).Interface())
	case reflect.Struct:
		field := rv.FieldByName(key)
		if !field.IsValid() || !field.CanInterface() {
			return ""
		}
		return Stringify(field.Interface())
	default:
		return ""
	}
}

// mapKey converts the lookup key to the map's key type. String-keyed maps use
// the key verbatim; integer-keyed maps parse it as a base-10 index.
func mapKey(kt reflect.Type, key string) (reflect.Value, bool) {
	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(kt), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(key, 10, 64)
		if err != nil || reflect.Zero(kt).OverflowInt(i) {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(i).Convert(kt), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(key, 10, 64)
		if err != nil || reflect.Zero(kt).OverflowUint(u) {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(u).Convert(kt), true
	default:
		return reflect.Value{}, false
	}
}
