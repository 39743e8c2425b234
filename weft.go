package weft

import (
	"github.com/vk/weft/internal/engine"
)

// Renderer is the plain template-function capability: anything that renders a
// context to a string. Every Template is a Renderer, and any Renderer can
// serve as an interleaved item or an If continuation.
type Renderer interface {
	Render(ctx any) (string, error)
}

// RenderFunc adapts an ordinary function to the Renderer interface.
type RenderFunc func(ctx any) (string, error)

// Render calls f.
func (f RenderFunc) Render(ctx any) (string, error) { return f(ctx) }

// Template is a compiled render function augmented with conditional chaining.
// Templates own no mutable state: every combinator returns a new Template and
// never alters the receiver, so a Template may be rendered and re-chained
// concurrently.
type Template struct {
	eval engine.Evaluator
}

// Compile builds a Template from a literal fragment sequence and its
// interleaved items. The fragment sequence must be exactly one longer than
// the item sequence; each item is classified once, as an absent value, a
// wrapped literal, a context lookup key, or a callable.
func Compile(fragments []string, items ...any) (*Template, error) {
	eval, err := engine.New(fragments, items)
	if err != nil {
		return nil, err
	}
	return &Template{eval: eval}, nil
}

// MustCompile is Compile that panics on error, for templates known to be
// well-formed at build time.
func MustCompile(fragments []string, items ...any) *Template {
	t, err := Compile(fragments, items...)
	if err != nil {
		panic(err)
	}
	return t
}

// Wrap attaches the conditional-chaining capability to an arbitrary
// renderer. Wrap panics on a nil renderer.
func Wrap(r Renderer) *Template {
	if r == nil {
		panic("weft: Wrap called with a nil renderer")
	}
	if t, ok := r.(*Template); ok {
		return t
	}
	return &Template{eval: r.Render}
}

// Render evaluates the template against ctx. The context must be a
// structured value; anything else returns ErrInvalidContext. Rendering
// either succeeds with the complete output string or fails before producing
// any output.
func (t *Template) Render(ctx any) (string, error) {
	if t == nil || t.eval == nil {
		return "", ErrNotCompiled
	}
	return t.eval(ctx)
}
