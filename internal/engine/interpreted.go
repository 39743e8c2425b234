package engine

import (
	"strings"

	"github.com/vk/weft/internal/value"
)

// NewInterpreted builds the fallback evaluator: a direct fold over fragments
// and items at render time, with no code generation. This is the reference
// semantics the generated strategy must reproduce exactly.
func NewInterpreted(fragments []string, items []value.Item) Evaluator {
	return func(ctx any) (string, error) {
		if err := value.CheckContext(ctx); err != nil {
			return "", err
		}
		var b strings.Builder
		for i, fragment := range fragments {
			b.WriteString(fragment)
			if i >= len(items) {
				continue
			}
			switch item := items[i]; item.Kind {
			case value.KindEmpty:
			case value.KindLiteral:
				b.WriteString(item.Text)
			case value.KindKey:
				b.WriteString(value.Resolve(ctx, item.Key))
			case value.KindCall:
				out, err := item.Call(ctx)
				if err != nil {
					return "", err
				}
				b.WriteString(out)
			}
		}
		return b.String(), nil
	}
}
