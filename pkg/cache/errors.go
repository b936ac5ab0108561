package cache

import "errors"

// ErrClosed is returned by MemoryCache operations after Close.
var ErrClosed = errors.New("cache closed")
