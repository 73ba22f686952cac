package cmd

import (
	"fmt"
	"math/rand"

	"github.com/flier/poolheap/pkg/poolheap"
)

// scenario is one self-contained demonstration of the allocator's
// contract: it builds its own pool, drives a handful of operations
// against it, and reports the first violated expectation. It returns
// the pool it built alongside the error, so a failing run can still be
// inspected for the diagnosed cause (see cmd/poolharness/cmd/run.go).
type scenario struct {
	name string
	desc string
	run  func() (*poolheap.Pool, error)
}

func expect(cond bool, format string, args ...any) error {
	if !cond {
		return fmt.Errorf(format, args...)
	}
	return nil
}

// scenarios is the registry driving both `list` and `run`, numbered to
// match the order the original harness printed them in (its
// LD_PRELOAD-only mmap/out-of-bounds scenarios have no counterpart
// here: see DESIGN.md).
var scenarios = []scenario{
	{"init", "initialize the pool and allocate from it", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		block := p.Alloc(100)
		return &p, expect(block.IsSome(), "alloc(100) after init(1024) returned null")
	}},
	{"alloc-and-free", "basic allocation and deallocation", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(100)
		if err := expect(a.IsSome(), "alloc(100) returned null"); err != nil {
			return &p, err
		}
		b := p.Alloc(200)
		if err := expect(b.IsSome(), "alloc(200) returned null"); err != nil {
			return &p, err
		}
		p.Free(a.Unwrap())
		p.Free(b.Unwrap())
		return &p, nil
	}},
	{"resize", "resizing an allocated block", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(100)
		if err := expect(a.IsSome(), "alloc(100) returned null"); err != nil {
			return &p, err
		}
		b := p.Resize(a.Unwrap(), 200)
		if err := expect(b.IsSome(), "resize(_, 200) returned null"); err != nil {
			return &p, err
		}
		p.Free(b.Unwrap())
		return &p, nil
	}},
	{"exceed-single-allocation", "allocation beyond total pool size fails", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		return &p, expect(!p.Alloc(2048).IsSome(), "alloc(2048) on a 1024-byte pool did not fail")
	}},
	{"exceed-cumulative-allocation", "cumulative allocations exceeding pool size fail", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(512)
		b := p.Alloc(512)
		if err := expect(a.IsSome() && b.IsSome(), "two 512-byte allocs on a 1024-byte pool failed"); err != nil {
			return &p, err
		}
		if err := expect(!p.Alloc(100).IsSome(), "a third alloc exceeding capacity did not fail"); err != nil {
			return &p, err
		}
		p.Free(a.Unwrap())
		p.Free(b.Unwrap())
		return &p, nil
	}},
	{"memory-overcommit", "allocation beyond the remaining free space fails", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(1020)
		if err := expect(a.IsSome(), "alloc(1020) on a 1024-byte pool returned null"); err != nil {
			return &p, err
		}
		if err := expect(!p.Alloc(10).IsSome(), "alloc(10) past the remaining 4 bytes did not fail"); err != nil {
			return &p, err
		}
		p.Free(a.Unwrap())
		return &p, nil
	}},
	{"boundary-condition", "allocating the exact pool size, then one more byte", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(1024)
		if err := expect(a.IsSome(), "alloc(1024) on a fresh 1024-byte pool returned null"); err != nil {
			return &p, err
		}
		if err := expect(!p.Alloc(1).IsSome(), "alloc(1) on an exhausted pool did not fail"); err != nil {
			return &p, err
		}
		p.Free(a.Unwrap())
		return &p, nil
	}},
	{"exact-fit-reuse", "freeing then reallocating the same size reuses the address", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(500)
		p.Free(a.Unwrap())
		b := p.Alloc(500)
		return &p, expect(a.Unwrap() == b.Unwrap(), "alloc(500) after free did not reuse the freed address")
	}},
	{"double-free", "freeing the same address twice is tolerated", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(100)
		if err := expect(a.IsSome(), "alloc(100) returned null"); err != nil {
			return &p, err
		}
		p.Free(a.Unwrap())
		p.Free(a.Unwrap())
		return &p, nil
	}},
	{"memory-fragmentation", "merging frees around a surviving middle block", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(200)
		b := p.Alloc(300)
		c := p.Alloc(500)
		p.Free(a.Unwrap())
		p.Free(c.Unwrap())
		d := p.Alloc(500)
		if err := expect(d.IsSome(), "alloc(500) after fragmenting frees returned null"); err != nil {
			return &p, err
		}
		p.Free(b.Unwrap())
		p.Free(d.Unwrap())
		return &p, nil
	}},
	{"edge-case-allocations", "a zero-size alloc followed by the remaining capacity", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		zero := p.Alloc(0)
		if err := expect(zero.IsSome(), "alloc(0) returned null"); err != nil {
			return &p, err
		}
		rest := p.Alloc(1024)
		if err := expect(rest.IsSome(), "alloc(1024) after alloc(0) returned null"); err != nil {
			return &p, err
		}
		if err := expect(!p.Alloc(1).IsSome(), "alloc(1) after exhausting the pool did not fail"); err != nil {
			return &p, err
		}
		p.Free(zero.Unwrap())
		p.Free(rest.Unwrap())
		return &p, nil
	}},
	{"frequent-small-allocations", "many small allocations and frees", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		const n = 50
		var blocks [n]poolheap.Addr
		for i := range blocks {
			b := p.Alloc(10)
			if err := expect(b.IsSome(), "alloc(10) #%d returned null", i); err != nil {
				return &p, err
			}
			blocks[i] = b.Unwrap()
		}
		for _, b := range blocks {
			p.Free(b)
		}
		return &p, nil
	}},
	{"memory-reuse", "freeing the first of two blocks lets a smaller alloc reuse it", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(256)
		b := p.Alloc(256)
		p.Free(a.Unwrap())
		c := p.Alloc(128)
		if err := expect(a.Unwrap() == c.Unwrap(), "alloc(128) after freeing the first 256-byte block did not reuse it"); err != nil {
			return &p, err
		}
		p.Free(b.Unwrap())
		p.Free(c.Unwrap())
		return &p, nil
	}},
	{"block-merging", "freeing three neighbors out of order fully merges them", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(200)
		b := p.Alloc(200)
		c := p.Alloc(200)
		p.Free(a.Unwrap())
		p.Free(c.Unwrap())
		p.Free(b.Unwrap())
		d := p.Alloc(600)
		if err := expect(d.IsSome(), "alloc(600) after merging three 200-byte blocks returned null"); err != nil {
			return &p, err
		}
		p.Free(d.Unwrap())
		return &p, nil
	}},
	{"non-contiguous-allocation-failure", "a request larger than any single hole fails", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(800)
		defer p.Deinit()

		a := p.Alloc(250)
		b := p.Alloc(250)
		c := p.Alloc(250)
		p.Free(a.Unwrap())
		p.Free(c.Unwrap())
		if err := expect(!p.Alloc(500).IsSome(), "alloc(500) across two non-adjacent holes unexpectedly succeeded"); err != nil {
			return &p, err
		}
		p.Free(b.Unwrap())
		return &p, nil
	}},
	{"contiguous-allocation-success", "freeing two adjacent blocks lets a bigger alloc land in their place", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(256)
		b := p.Alloc(256)
		c := p.Alloc(512)
		p.Free(a.Unwrap())
		p.Free(b.Unwrap())
		d := p.Alloc(500)
		if err := expect(d.IsSome(), "alloc(500) into two merged 256-byte holes returned null"); err != nil {
			return &p, err
		}
		p.Free(c.Unwrap())
		p.Free(d.Unwrap())
		return &p, nil
	}},
	{"zero-alloc-and-free", "alloc(0) followed by alloc(200) may share an address", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1024)
		defer p.Deinit()

		a := p.Alloc(0)
		if err := expect(a.IsSome(), "alloc(0) returned null"); err != nil {
			return &p, err
		}
		b := p.Alloc(200)
		if err := expect(b.IsSome(), "alloc(200) after alloc(0) returned null"); err != nil {
			return &p, err
		}
		if err := expect(a.Unwrap() == b.Unwrap(), "alloc(0) and the following alloc(200) landed at different addresses"); err != nil {
			return &p, err
		}
		p.Free(a.Unwrap())
		p.Free(b.Unwrap())
		return &p, nil
	}},
	{"random-blocks", "a randomized count of randomly sized blocks all allocate and free", func() (*poolheap.Pool, error) {
		n := 1000 + rand.Intn(9000)
		size := rand.Intn(1024)
		var p poolheap.Pool
		p.Init(n * 1024)
		defer p.Deinit()

		blocks := make([]poolheap.Addr, n)
		for i := 0; i < n; i++ {
			b := p.Alloc(size)
			if err := expect(b.IsSome(), "alloc(%d) block #%d returned null", size, i); err != nil {
				return &p, err
			}
			blocks[i] = b.Unwrap()
			size = rand.Intn(1024)
		}
		for _, b := range blocks {
			p.Free(b)
		}
		return &p, nil
	}},
	{"init-large", "initializing a megabyte-scale pool", func() (*poolheap.Pool, error) {
		var p poolheap.Pool
		p.Init(1 << 20)
		defer p.Deinit()

		block := p.Alloc(100)
		return &p, expect(block.IsSome(), "alloc(100) on a 1MiB pool returned null")
	}},
}
