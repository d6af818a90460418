// Package bufpool pools the byte buffers the ASCII serializer builds
// its output into, so repeated ToASCII calls don't each pay a fresh
// allocation. JSON output goes through json.Marshal and does not use
// the pool.
package bufpool

import "sync"

var bufferPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 4096)
	},
}

// Get returns a zero-length buffer with at least the given capacity.
func Get(capHint int) []byte {
	buf := bufferPool.Get().([]byte)
	if cap(buf) < capHint {
		return make([]byte, 0, capHint)
	}
	return buf[:0]
}

// Release returns buf to the pool.
func Release(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bufferPool.Put(buf[:0])
}
