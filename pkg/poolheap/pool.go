package poolheap

import (
	"fmt"
	"os"

	"github.com/flier/poolheap/internal/debug"
	"github.com/flier/poolheap/pkg/opt"
)

// Pool is a fixed-size byte region managed with an out-of-band free
// list. The zero Pool is not usable; call [Pool.Init] first.
//
// A Pool is not safe for concurrent use (see the package doc).
type Pool struct {
	buf     []byte
	head    *record
	idx     *addrIndex
	used    int
	live    bool
	lastErr error
}

// LastError returns the cause of the most recently diagnosed failure
// (invalid address, out of memory, degenerate size), or nil if no
// operation has failed yet. It is the idiomatic escape hatch for
// callers that want to distinguish failure causes (e.g. with
// pkg/xerrors.AsA) without poolheap's public operations having to
// return an error alongside their address/no-op contract.
func (p *Pool) LastError() error {
	return p.lastErr
}

// Init acquires a size-byte backing region and installs a single free
// record covering it. If size is not positive, or the host allocation
// fails, Init prints a diagnostic and leaves the Pool unusable: every
// subsequent Alloc call returns None until Init succeeds.
func (p *Pool) Init(size int) {
	if size <= 0 {
		p.diagnose(&DegenerateSizeError{Size: size})
		p.live = false
		return
	}

	buf, ok := acquire(size)
	if !ok {
		p.diagnose(&OutOfMemoryError{Size: size})
		p.live = false
		return
	}

	p.buf = buf
	p.used = 0
	p.idx = newAddrIndex()
	p.head = &record{addr: 0, size: size, free: true}
	p.idx.put(p.head)
	p.live = true

	debug.Log(nil, "init", "size=%d", size)
}

// acquire allocates size bytes from the host, converting any allocation
// panic (the closest Go analogue to a failing host allocator) into a
// reported failure instead of crashing the process.
func acquire(size int) (buf []byte, ok bool) {
	defer func() {
		if recover() != nil {
			buf, ok = nil, false
		}
	}()

	return make([]byte, size), true
}

// Cap returns the total size of the pool's backing region, or 0 if the
// pool is not live.
func (p *Pool) Cap() int {
	if !p.live {
		return 0
	}
	return len(p.buf)
}

// Used returns the number of bytes currently handed out to callers.
func (p *Pool) Used() int {
	return p.used
}

// Alloc returns an address to a payload span of at least size bytes,
// or None if no single free record can accommodate the request. A size
// of 0 succeeds whenever the pool has at least one free record: the
// whole free record scanned is split at its own start, so the in-use
// record gets 0 payload bytes and the free remainder keeps the original
// address. A pool with no free record left (for example after an
// exact-fit Alloc of its full capacity) returns None for size 0 too.
// This is why two back-to-back Alloc(0) calls return the same address:
// each one re-discovers the same free record at the same offset.
func (p *Pool) Alloc(size int) opt.Option[Addr] {
	if !p.live || size < 0 {
		return opt.None[Addr]()
	}

	if p.used+size > len(p.buf) {
		return opt.None[Addr]()
	}

	for r := p.head; r != nil; r = r.next {
		if !r.free || r.size < size {
			continue
		}

		if residue := r.size - size; residue > 0 {
			tail := &record{addr: r.addr + Addr(size), size: residue, free: true, next: r.next}
			r.next = tail
			p.idx.put(tail)
		}

		r.size = size
		r.free = false
		p.used += size

		debug.Log(nil, "alloc", "addr=%d size=%d used=%d", r.addr, size, p.used)

		return opt.Some(r.addr)
	}

	return opt.None[Addr]()
}

// Free marks the record whose payload starts at addr as free, and
// coalesces it with an immediately adjacent free neighbor on either
// side. An address that does not match a known record's payload start,
// including an already-freed address, is reported as invalid and
// otherwise ignored; Free never corrupts the pool.
func (p *Pool) Free(addr Addr) {
	if !p.live {
		p.diagnose(&InvalidAddressError{Addr: addr})
		return
	}

	r := p.idx.get(addr)
	if r == nil {
		p.diagnose(&InvalidAddressError{Addr: addr})
		return
	}
	if r.free {
		p.diagnose(&InvalidAddressError{Addr: addr})
		return
	}

	r.free = true
	p.used -= r.size

	// Successor merge first, so the predecessor merge below always sees
	// a single (possibly already-grown) current record.
	if r.next != nil && r.next.free {
		dropped := r.next
		r.size += dropped.size
		r.next = dropped.next
		p.idx.remove(dropped.addr)
	}

	if prev := p.predecessorOf(r); prev != nil && prev.free {
		prev.size += r.size
		prev.next = r.next
		p.idx.remove(r.addr)
	}

	debug.Log(nil, "free", "addr=%d used=%d", addr, p.used)
}

// Resize returns an address to a span of at least size bytes containing
// the original record's content preserved up to min(oldSize, size). It
// returns the same address whenever an in-place shrink or grow is
// possible, and only moves the block (allocating a new span, copying,
// and freeing the old one) when in-place growth cannot be satisfied.
// It returns None only when the allocator cannot satisfy the request at
// all.
func (p *Pool) Resize(addr Addr, size int) opt.Option[Addr] {
	if !p.live || size < 0 {
		p.diagnose(&InvalidAddressError{Addr: addr})
		return opt.None[Addr]()
	}

	r := p.idx.get(addr)
	if r == nil || r.free {
		p.diagnose(&InvalidAddressError{Addr: addr})
		return opt.None[Addr]()
	}

	switch {
	case size == r.size:
		return opt.Some(addr)

	case size < r.size:
		p.shrink(r, size)
		return opt.Some(addr)

	default:
		if p.growInPlace(r, size) {
			return opt.Some(addr)
		}
		return p.growByMove(addr, r, size)
	}
}

func (p *Pool) shrink(r *record, size int) {
	residue := r.size - size
	if residue > 0 {
		next := r.next
		if next != nil && next.free {
			// Fold a free successor into the new tail, so the shrink never
			// leaves two adjacent free records.
			p.idx.remove(next.addr)
			residue += next.size
			next = next.next
		}
		tail := &record{addr: r.addr + Addr(size), size: residue, free: true, next: next}
		r.next = tail
		p.idx.put(tail)
	}

	p.used -= r.size - size
	r.size = size

	debug.Log(nil, "resize/shrink", "addr=%d size=%d used=%d", r.addr, size, p.used)
}

// growInPlace absorbs r's immediate successor when it is free and, with
// r's current span, large enough to cover size. It never moves r.
func (p *Pool) growInPlace(r *record, size int) bool {
	succ := r.next
	if succ == nil || !succ.free || succ.size+r.size < size {
		return false
	}

	debug.Assert(r.end() == succ.addr, "adjacent records must be contiguous: %d != %d", r.end(), succ.addr)

	needed := size - r.size
	leftover := succ.size - needed

	p.idx.remove(succ.addr)
	if leftover > 0 {
		tail := &record{addr: r.addr + Addr(size), size: leftover, free: true, next: succ.next}
		r.next = tail
		p.idx.put(tail)
	} else {
		r.next = succ.next
	}

	p.used += needed
	r.size = size

	debug.Log(nil, "resize/grow", "addr=%d size=%d used=%d", r.addr, size, p.used)

	return true
}

// growByMove allocates a fresh size-byte span, copies the preserved
// prefix of the old payload into it, frees the old address, and
// returns the new one. It returns None if no span of size bytes is
// available anywhere in the pool.
func (p *Pool) growByMove(oldAddr Addr, r *record, size int) opt.Option[Addr] {
	newAddrOpt := p.Alloc(size)
	if newAddrOpt.IsNone() {
		return opt.None[Addr]()
	}

	newAddr := newAddrOpt.Unwrap()
	n := r.size
	if size < n {
		n = size
	}
	copy(p.View(newAddr, n), p.View(oldAddr, n))

	p.Free(oldAddr)

	debug.Log(nil, "resize/move", "old=%d new=%d size=%d", oldAddr, newAddr, size)

	return opt.Some(newAddr)
}

// Deinit releases the pool's backing region and resets the record list,
// index and usage count to a pristine state, so that a subsequent Init
// starts clean. LastError keeps reporting the last diagnosed cause.
func (p *Pool) Deinit() {
	p.buf = nil
	p.head = nil
	p.idx = nil
	p.used = 0
	p.live = false

	debug.Log(nil, "deinit", "")
}

// View returns a slice over the size bytes of the pool starting at
// addr. The slice aliases the pool's backing array directly: writes
// through it are writes to the pool, and the slice becomes invalid the
// moment Deinit runs.
func (p *Pool) View(addr Addr, size int) []byte {
	return p.buf[addr : int(addr)+size]
}

// predecessorOf walks the record chain to find the record immediately
// preceding target. Iterative by design: the original C allocator this
// package is modeled on frees metadata recursively along the next
// chain, which can overflow the stack for a pool with enough live
// blocks; nothing here recurses over record chains.
func (p *Pool) predecessorOf(target *record) *record {
	for r := p.head; r != nil; r = r.next {
		if r.next == target {
			return r
		}
	}
	return nil
}

// diagnose records cause as the pool's last error, traces it through
// internal/debug, and always prints a human-readable line to stderr
// regardless of the debug build tag, per the package's error-handling
// contract: diagnostics are never silent, even in release builds.
func (p *Pool) diagnose(cause error) {
	p.lastErr = cause
	debug.Log(nil, "diagnostic", "%s", cause)
	fmt.Fprintln(os.Stderr, cause)
}
