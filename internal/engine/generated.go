package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/weft/internal/value"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// genCall is one callable item bound to its function name in the generated
// source. Order follows item order so render errors surface first-wins.
type genCall struct {
	name string
	call func(ctx any) (string, error)
}

// NewGenerated builds the fast-path evaluator. It synthesizes an HCL template
// expression from the fragments and items, parses it once, and reuses the
// parsed expression for every render. Literal text is escaped for the
// embedding template syntax; key items become ctx traversals; callable items
// become zero-argument functions closing over the render context.
func NewGenerated(fragments []string, items []value.Item) (Evaluator, error) {
	src, keys, calls := synthesize(fragments, items)
	if src == "" {
		return func(ctx any) (string, error) {
			return "", value.CheckContext(ctx)
		}, nil
	}

	expr, diags := hclsyntax.ParseTemplate([]byte(src), "weft-generated", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("weft: generated template source %q: %s", src, diags.Error())
	}

	return func(ctx any) (string, error) {
		if err := value.CheckContext(ctx); err != nil {
			return "", err
		}

		attrs := make(map[string]cty.Value, len(keys))
		for _, k := range keys {
			attrs[k] = cty.StringVal(value.Resolve(ctx, k))
		}
		evalCtx := &hcl.EvalContext{
			Variables: map[string]cty.Value{"ctx": cty.ObjectVal(attrs)},
		}

		var callErr error
		if len(calls) > 0 {
			fns := make(map[string]function.Function, len(calls))
			for _, c := range calls {
				call := c.call
				fns[c.name] = function.New(&function.Spec{
					Type: function.StaticReturnType(cty.String),
					Impl: func(_ []cty.Value, _ cty.Type) (cty.Value, error) {
						// Template evaluation visits every part even after a
						// diagnostic, but the fold contract stops calling user
						// code at the first failure.
						if callErr != nil {
							return cty.StringVal(""), nil
						}
						out, err := call(ctx)
						if err != nil {
							if callErr == nil {
								callErr = err
							}
							return cty.StringVal(""), err
						}
						return cty.StringVal(out), nil
					},
				})
			}
			evalCtx.Functions = fns
		}

		val, diags := expr.Value(evalCtx)
		if callErr != nil {
			return "", callErr
		}
		if diags.HasErrors() {
			return "", fmt.Errorf("weft: generated template evaluation: %s", diags.Error())
		}
		return templateResult(val)
	}, nil
}

// synthesize assembles the template source plus the referenced keys (unique,
// in first-use order) and callable bindings. Adjacent literal text, including
// fragments separated only by empty items and baked wrapped-literal text, is
// accumulated into one run so escaping sees the exact byte sequence the
// template parser will.
func synthesize(fragments []string, items []value.Item) (string, []string, []genCall) {
	var b, run strings.Builder
	var keys []string
	var calls []genCall
	seen := make(map[string]bool)

	flush := func(beforeInterpolation bool) {
		b.WriteString(escapeRun(run.String(), beforeInterpolation))
		run.Reset()
	}

	for i, fragment := range fragments {
		run.WriteString(fragment)
		if i >= len(items) {
			continue
		}
		switch item := items[i]; item.Kind {
		case value.KindEmpty:
		case value.KindLiteral:
			run.WriteString(item.Text)
		case value.KindKey:
			flush(true)
			b.WriteString(keyAccess(item.Key))
			if !seen[item.Key] {
				seen[item.Key] = true
				keys = append(keys, item.Key)
			}
		case value.KindCall:
			flush(true)
			name := fmt.Sprintf("f%d", i)
			b.WriteString("${" + name + "()}")
			calls = append(calls, genCall{name: name, call: item.Call})
		}
	}
	flush(false)
	return b.String(), keys, calls
}

// escapeRun escapes literal text for the template layer: the interpolation
// and directive introducer sequences become their doubled escape forms, and
// nothing else is altered. When an interpolation follows the run, a trailing
// run of '$' would fuse with the inserted "${" into an escape sequence, so it
// is re-emitted as an interpolated string literal.
func escapeRun(s string, beforeInterpolation bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c == '$' || c == '%') && i+1 < len(s) && s[i+1] == '{' {
			b.WriteByte(c)
			b.WriteByte(c)
			b.WriteByte('{')
			i++
			continue
		}
		b.WriteByte(c)
	}
	out := b.String()
	if beforeInterpolation {
		n := len(out)
		for n > 0 && out[n-1] == '$' {
			n--
		}
		if n < len(out) {
			out = out[:n] + `${"` + out[n:] + `"}`
		}
	}
	return out
}

// keyAccess emits the substitution expression for a key item: property-style
// traversal when the key is a safe identifier, computed index access with a
// JSON-encoded key otherwise. The encoded form is run through the same
// escaper since quoted strings are themselves a template context.
func keyAccess(key string) string {
	if safeIdentifier(key) {
		return "${ctx." + key + "}"
	}
	encoded, _ := json.Marshal(key)
	return "${ctx[" + escapeRun(string(encoded), false) + "]}"
}

// safeIdentifier reports whether key can follow a '.' in a traversal without
// quoting. The check is stricter than the template syntax allows; anything it
// rejects still works through computed access.
func safeIdentifier(key string) bool {
	if key == "" || key == "true" || key == "false" || key == "null" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// templateResult converts the evaluated template value to its output string.
func templateResult(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", nil
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("weft: generated template result: %w", err)
	}
	return s.AsString(), nil
}
