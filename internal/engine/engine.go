package engine

import (
	"fmt"
	"log/slog"

	"github.com/vk/weft/internal/value"
)

// Evaluator renders a compiled template against one context. Evaluators are
// immutable after construction and safe for concurrent use.
type Evaluator func(ctx any) (string, error)

// useGenerated records the process-wide strategy choice. It is written once
// during package init and read-only afterwards.
var useGenerated = probeGenerated()

// New classifies the interleaved items and compiles the template under the
// selected strategy. The fragment sequence must be exactly one longer than
// the item sequence.
func New(fragments []string, items []any) (Evaluator, error) {
	if len(fragments) == 0 {
		return nil, fmt.Errorf("weft: template needs at least one fragment")
	}
	if len(fragments) != len(items)+1 {
		return nil, fmt.Errorf("weft: %d fragments require %d interleaved items, got %d",
			len(fragments), len(fragments)-1, len(items))
	}
	classified := make([]value.Item, len(items))
	for i, raw := range items {
		item, err := value.Classify(raw)
		if err != nil {
			return nil, fmt.Errorf("weft: item %d: %w", i, err)
		}
		classified[i] = item
	}
	if useGenerated {
		return NewGenerated(fragments, classified)
	}
	return NewInterpreted(fragments, classified), nil
}

// probeGenerated decides the process-wide strategy. It compiles and renders a
// small template that exercises the escaper; any panic, error, or output
// mismatch permanently demotes the process to the interpreted strategy.
func probeGenerated() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
		strategy := "interpreted"
		if ok {
			strategy = "generated"
		}
		slog.Debug("template strategy selected", "strategy", strategy)
	}()

	fragments := []string{"p$", "%{!"}
	items := []value.Item{{Kind: value.KindKey, Key: "probe"}}
	eval, err := NewGenerated(fragments, items)
	if err != nil {
		return false
	}
	got, err := eval(map[string]any{"probe": "ok"})
	return err == nil && got == "p$ok%{!"
}
