package weft

import (
	"errors"

	"github.com/vk/weft/internal/value"
)

// ErrInvalidContext is returned by Render when the context is not a
// structured value (map, slice, array, struct, or pointer to one). The check
// runs on every call.
var ErrInvalidContext = value.ErrInvalidContext

// ErrNotCompiled is returned by Render on a Template that was constructed
// directly instead of through Compile or Wrap.
var ErrNotCompiled = errors.New("weft: template not compiled; use Compile or Wrap")
