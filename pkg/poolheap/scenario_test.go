package poolheap_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/poolheap/pkg/poolheap"
)

// These mirror the end-to-end scenarios a fixed-pool allocator is
// expected to satisfy: alloc/free round trips, first-fit reuse,
// multi-neighbor coalescing, and the capacity boundary.
func TestScenarios(t *testing.T) {
	Convey("Given a 1024-byte pool", t, func() {
		var p poolheap.Pool
		p.Init(1024)
		Reset(func() { p.Deinit() })

		Convey("alloc then free returns a non-null address", func() {
			a := p.Alloc(100)
			So(a.IsSome(), ShouldBeTrue)
			p.Free(a.Unwrap())
		})

		Convey("freeing an exact-fit allocation lets the next alloc reuse it", func() {
			a := p.Alloc(500)
			p.Free(a.Unwrap())
			b := p.Alloc(500)

			So(b.Unwrap(), ShouldEqual, a.Unwrap())
		})

		Convey("first-fit reuses the leftmost freed record", func() {
			a := p.Alloc(256)
			_ = p.Alloc(256)
			p.Free(a.Unwrap())
			c := p.Alloc(128)

			So(c.Unwrap(), ShouldEqual, a.Unwrap())
		})

		Convey("freeing three neighbors in first-last-middle order fully merges them", func() {
			a := p.Alloc(200)
			b := p.Alloc(200)
			c := p.Alloc(200)
			p.Free(a.Unwrap())
			p.Free(c.Unwrap())
			p.Free(b.Unwrap())

			d := p.Alloc(600)
			So(d.IsSome(), ShouldBeTrue)
		})

		Convey("an over-budget request returns null", func() {
			So(p.Alloc(2048).IsSome(), ShouldBeFalse)
		})

		Convey("the exact pool size can be allocated once, and only once", func() {
			a := p.Alloc(1024)
			So(a.IsSome(), ShouldBeTrue)
			So(p.Alloc(1).IsSome(), ShouldBeFalse)
		})

		Convey("a zero-size allocation and the following alloc(200) share an address", func() {
			a := p.Alloc(0)
			b := p.Alloc(200)

			So(a.IsSome(), ShouldBeTrue)
			So(b.IsSome(), ShouldBeTrue)
			So(a.Unwrap(), ShouldEqual, b.Unwrap())
		})

		Convey("resize then free leaves a non-null address", func() {
			a := p.Alloc(100)
			q := p.Resize(a.Unwrap(), 200)
			So(q.IsSome(), ShouldBeTrue)

			p.Free(q.Unwrap())
		})
	})

	Convey("Given an 800-byte pool fragmented into non-adjacent holes", t, func() {
		var p poolheap.Pool
		p.Init(800)
		Reset(func() { p.Deinit() })

		a := p.Alloc(250)
		_ = p.Alloc(250)
		c := p.Alloc(250)
		p.Free(a.Unwrap())
		p.Free(c.Unwrap())

		Convey("a request larger than any single free hole fails", func() {
			So(p.Alloc(500).IsSome(), ShouldBeFalse)
		})
	})
}
