package rhi

import "errors"

// ErrFatal marks an unrecoverable GPU-context error: context loss,
// allocation failure, or an incomplete framebuffer. These are logged and the
// caller is expected to abort rather than try to keep rendering with a
// broken device.
var ErrFatal = errors.New("rhi: fatal gpu error")

// ErrInvalidHandle is returned by lookups against a stale or zero handle.
// Callers treat it like an asset error: log once, skip the draw.
var ErrInvalidHandle = errors.New("rhi: invalid handle")
