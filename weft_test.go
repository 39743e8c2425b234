package weft_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/weft"
)

func TestCompile(t *testing.T) {
	t.Run("key substitution", func(t *testing.T) {
		tpl, err := weft.Compile([]string{"a ", " b"}, "x")
		require.NoError(t, err)
		got, err := tpl.Render(map[string]any{"x": "VAL"})
		require.NoError(t, err)
		assert.Equal(t, "a VAL b", got)
	})

	t.Run("missing and nil values render empty", func(t *testing.T) {
		tpl := weft.MustCompile([]string{"a ", " b"}, "x")

		got, err := tpl.Render(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "a  b", got)

		got, err = tpl.Render(map[string]any{"x": nil})
		require.NoError(t, err)
		assert.Equal(t, "a  b", got)
	})

	t.Run("wrapped literal never consults context", func(t *testing.T) {
		n := 3
		tpl := weft.MustCompile([]string{"sum=", ""}, &n)
		got, err := tpl.Render(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "sum=3", got)
	})

	t.Run("callable receives the render context", func(t *testing.T) {
		tpl := weft.MustCompile([]string{"say ", ""}, func(ctx any) any {
			return ctx.(map[string]any)["name"]
		})
		got, err := tpl.Render(map[string]any{"name": "Al"})
		require.NoError(t, err)
		assert.Equal(t, "say Al", got)
	})

	t.Run("callable runs fresh on every render", func(t *testing.T) {
		calls := 0
		tpl := weft.MustCompile([]string{"n=", ""}, func(any) any {
			calls++
			return calls
		})
		got, _ := tpl.Render(map[string]any{})
		assert.Equal(t, "n=1", got)
		got, _ = tpl.Render(map[string]any{})
		assert.Equal(t, "n=2", got)
	})

	t.Run("nested template as item", func(t *testing.T) {
		inner := weft.MustCompile([]string{"<", ">"}, "name")
		outer := weft.MustCompile([]string{"say ", "!"}, inner)
		got, err := outer.Render(map[string]any{"name": "Al"})
		require.NoError(t, err)
		assert.Equal(t, "say <Al>!", got)
	})

	t.Run("numeric key indexes slice contexts", func(t *testing.T) {
		tpl := weft.MustCompile([]string{"first=", ""}, 0)
		got, err := tpl.Render([]any{"gold", "silver"})
		require.NoError(t, err)
		assert.Equal(t, "first=gold", got)
	})

	t.Run("struct context", func(t *testing.T) {
		type user struct{ Name string }
		tpl := weft.MustCompile([]string{"hi ", ""}, "Name")
		got, err := tpl.Render(user{Name: "Al"})
		require.NoError(t, err)
		assert.Equal(t, "hi Al", got)
	})

	t.Run("fragment count invariant", func(t *testing.T) {
		_, err := weft.Compile([]string{"a"}, "x")
		assert.ErrorContains(t, err, "fragments")

		_, err = weft.Compile(nil)
		assert.ErrorContains(t, err, "fragment")
	})

	t.Run("unsupported item", func(t *testing.T) {
		_, err := weft.Compile([]string{"a", "b"}, func() {})
		assert.ErrorContains(t, err, "unsupported item type")
	})
}

func TestMustCompile(t *testing.T) {
	assert.NotNil(t, weft.MustCompile([]string{"ok"}))
	assert.Panics(t, func() { weft.MustCompile([]string{"a"}, "x") })
}

func TestRender_InvalidContext(t *testing.T) {
	tpl := weft.MustCompile([]string{"a ", " b"}, "x")
	for _, ctx := range []any{nil, "str", 42, 1.5, true} {
		_, err := tpl.Render(ctx)
		assert.ErrorIs(t, err, weft.ErrInvalidContext, "context %T", ctx)
	}
}

func TestRender_NotCompiled(t *testing.T) {
	var zero weft.Template
	_, err := zero.Render(map[string]any{})
	assert.ErrorIs(t, err, weft.ErrNotCompiled)

	var nilTpl *weft.Template
	_, err = nilTpl.Render(map[string]any{})
	assert.ErrorIs(t, err, weft.ErrNotCompiled)
}

func TestRender_Idempotent(t *testing.T) {
	tpl := weft.MustCompile([]string{"a ", " and ", ""}, "x", "y")
	ctx := map[string]any{"x": "1", "y": "2"}

	first, err := tpl.Render(ctx)
	require.NoError(t, err)
	second, err := tpl.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "a 1 and 2", first)
}

func TestRender_ErrorIsAtomic(t *testing.T) {
	boom := errors.New("boom")
	tpl := weft.MustCompile([]string{"before ", " after"}, func(any) (string, error) {
		return "", boom
	})
	got, err := tpl.Render(map[string]any{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, got, "failed renders produce no partial output")
}
