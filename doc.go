// Package weft compiles tagged string templates into reusable render
// functions.
//
// A template is an ordered sequence of literal text fragments interleaved
// with items: lookup keys resolved against a render context, wrapped literal
// values inserted verbatim, or callables invoked with the context. Compile
// classifies the items once and returns a Template that can be rendered any
// number of times:
//
//	t, err := weft.Compile([]string{"hello ", "!"}, "name")
//	out, err := t.Render(map[string]any{"name": "world"}) // "hello world!"
//
// Templates compose conditionally without mutation. If and its variants
// return a new Template chaining a continuation behind a separator when the
// condition holds, and return the receiver untouched when it does not:
//
//	desc := weft.MustCompile([]string{"id INTEGER"}).
//		If(notNull, weft.MustCompile([]string{"NOT NULL"})).
//		If(primary, weft.MustCompile([]string{"PRIMARY KEY"}))
//
// Rendering is a pure synchronous computation. Templates are immutable after
// creation and safe for concurrent use.
//
// Fragment text, keys, and substituted values are expected to be NFC-normal
// UTF-8, the form Go source literals are written in. The fast rendering path
// stores strings NFC-normalized, so output for non-normal input may differ
// from its input byte sequence.
package weft
