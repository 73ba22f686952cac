package poolheap

import "github.com/flier/poolheap/pkg/opt"

// shared is the package-level pool backing the free-function API below,
// kept for parity with the original single-pool C surface this package
// is modeled on (mem_init/mem_alloc/mem_free/mem_resize/mem_deinit).
// New code should prefer constructing its own *Pool.
var shared Pool

// Init initializes the shared pool. Unlike (*Pool).Init, calling Init
// again before a matching Deinit is rejected outright (diagnostic, the
// previous pool is left untouched) rather than silently leaking the
// old region, as the original C implementation did.
func Init(size int) {
	if shared.live {
		shared.diagnose(&AlreadyInitializedError{})
		return
	}

	shared.Init(size)
}

// Alloc allocates from the shared pool. See (*Pool).Alloc.
func Alloc(size int) opt.Option[Addr] {
	return shared.Alloc(size)
}

// Free releases an address back to the shared pool. See (*Pool).Free.
func Free(addr Addr) {
	shared.Free(addr)
}

// Resize resizes an address in the shared pool. See (*Pool).Resize.
func Resize(addr Addr, size int) opt.Option[Addr] {
	return shared.Resize(addr, size)
}

// Deinit releases the shared pool. See (*Pool).Deinit.
func Deinit() {
	shared.Deinit()
}

// View returns a slice over the shared pool. See (*Pool).View.
func View(addr Addr, size int) []byte {
	return shared.View(addr, size)
}

// LastError returns the shared pool's most recently diagnosed error.
func LastError() error {
	return shared.LastError()
}
