package value

import (
	"fmt"
	"reflect"
	"strconv"
)

// Kind discriminates the four item variants of a tagged template.
type Kind int

const (
	// KindEmpty is an absent item; it contributes nothing to the output.
	KindEmpty Kind = iota
	// KindLiteral is a wrapped compound value whose string form is inserted
	// directly, never consulting the context.
	KindLiteral
	// KindKey is a primitive used to look a value up in the render context.
	KindKey
	// KindCall is a callable invoked with the render context on every render.
	KindCall
)

// Item is one classified interleaved item. Literal items carry their final
// text; key items carry the lookup key; call items carry a normalized
// invocation closure.
type Item struct {
	Kind Kind
	Key  string
	Text string
	Call func(ctx any) (string, error)
}

// renderer matches any value exposing the Render capability, including the
// public Template and RenderFunc types, without importing them.
type renderer interface {
	Render(ctx any) (string, error)
}

// Classify maps a raw interleaved item onto its variant. The precedence
// mirrors the render contract: nil first, then callables, then primitives as
// keys, and any remaining compound value as a wrapped literal. Callables with
// an unsupported signature are a compile-time error.
func Classify(raw any) (Item, error) {
	switch v := raw.(type) {
	case nil:
		return Item{Kind: KindEmpty}, nil
	case renderer:
		return Item{Kind: KindCall, Call: v.Render}, nil
	case func(any) (string, error):
		return Item{Kind: KindCall, Call: v}, nil
	case func(any) string:
		return Item{Kind: KindCall, Call: func(ctx any) (string, error) {
			return v(ctx), nil
		}}, nil
	case func(any) any:
		return Item{Kind: KindCall, Call: func(ctx any) (string, error) {
			return Stringify(v(ctx)), nil
		}}, nil
	case string:
		return Item{Kind: KindKey, Key: v}, nil
	case bool:
		return Item{Kind: KindKey, Key: strconv.FormatBool(v)}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Item{Kind: KindKey, Key: Stringify(v)}, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan:
		return Item{}, fmt.Errorf("unsupported item type %T: callables must take one context argument and return a string-coercible value", raw)
	case reflect.String:
		// Named string types still act as keys.
		return Item{Kind: KindKey, Key: rv.String()}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Item{Kind: KindKey, Key: Stringify(raw)}, nil
	default:
		return Item{Kind: KindLiteral, Text: Stringify(raw)}, nil
	}
}

// Stringify renders a looked-up or wrapped value as output text. Strings pass
// through untouched, nil contributes nothing, and pointers stringify their
// referent.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	return fmt.Sprintf("%v", rv.Interface())
}
