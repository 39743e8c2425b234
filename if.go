package weft

// DefaultSep separates a template from its chained continuation when no
// explicit separator is given.
const DefaultSep = " "

// TagFunc is the curried form of the conditional combinator: it accepts a
// fresh fragment/item pair, compiles it, and chains the result.
type TagFunc func(fragments []string, items ...any) (*Template, error)

// If chains cont behind the template with the default single-space
// separator. See IfSep.
func (t *Template) If(cond bool, cont Renderer) *Template {
	return t.IfSep(cond, DefaultSep, cont)
}

// IfSep conditionally chains a continuation. When cond is false the receiver
// is returned unchanged and the continuation is never invoked. When cond is
// true the result is a new Template rendering the receiver's output, the
// separator, then the continuation's output; both sides are evaluated on
// every render, and the first error wins. A nil continuation under a true
// condition panics.
func (t *Template) IfSep(cond bool, sep string, cont Renderer) *Template {
	if !cond {
		return t
	}
	if cont == nil {
		panic("weft: If called with a nil continuation")
	}
	base := t
	return &Template{eval: func(ctx any) (string, error) {
		left, err := base.Render(ctx)
		if err != nil {
			return "", err
		}
		right, err := cont.Render(ctx)
		if err != nil {
			return "", err
		}
		return left + sep + right, nil
	}}
}

// IfTag is the curried combinator with the default separator. See IfTagSep.
func (t *Template) IfTag(cond bool) TagFunc {
	return t.IfTagSep(cond, DefaultSep)
}

// IfTagSep returns a tag function that compiles a continuation from a
// fragment/item pair and chains it behind the receiver. A false condition
// short-circuits before compilation: the returned tag function ignores its
// arguments entirely and yields the receiver.
func (t *Template) IfTagSep(cond bool, sep string) TagFunc {
	if !cond {
		return func([]string, ...any) (*Template, error) {
			return t, nil
		}
	}
	return func(fragments []string, items ...any) (*Template, error) {
		cont, err := Compile(fragments, items...)
		if err != nil {
			return nil, err
		}
		return t.IfSep(true, sep, cont), nil
	}
}
