// Package poolheap implements a fixed-size pool allocator: a single
// contiguous byte region acquired once from the host, managed with an
// out-of-band free list of block records.
//
// # Design
//
// A [Pool] owns exactly one backing []byte of caller-chosen size,
// allocated at [Pool.Init] and released at [Pool.Deinit]. Block
// metadata (size, free flag, successor, payload offset) lives outside
// the pool, as plain Go structs linked in address order; this keeps
// every byte of the backing region usable as payload, so a fresh
// Init(n) pool can satisfy a single Alloc(n) request.
//
// Allocation is first-fit: the record list is scanned in address order
// and the first free record large enough to hold the request is used,
// splitting off any leftover residue as a new free record. Freeing a
// block coalesces it with an immediately adjacent free neighbor on
// either side, so the list never carries two adjacent free records.
// Resize grows in place by absorbing a free successor when possible,
// and otherwise falls back to allocate-copy-free.
//
// # Memory safety
//
// Unlike an arena that hands out unsafe.Pointer-shaped values into a
// growable chunk, a Pool never grows or moves its backing array once
// Init has run. Addresses handed to callers are [Addr] values, plain
// byte offsets into that one array, and [Pool.View] turns an Addr plus
// a length into an ordinary Go slice. There is no unsafe package
// anywhere in this tree.
//
// # Concurrency
//
// A Pool is not safe for concurrent use. Callers must serialize Init,
// Alloc, Free, Resize and Deinit themselves; there is exactly one live
// pool per Pool value, matching the single-pool, single-threaded model
// the original C allocator this package is modeled on assumed.
package poolheap
