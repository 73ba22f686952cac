package list_test

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/poolheap/pkg/opt"
	"github.com/flier/poolheap/pkg/poolheap"
	"github.com/flier/poolheap/pkg/poolheap/list"
)

func TestList(t *testing.T) {
	Convey("Given a list over a freshly initialized pool", t, func() {
		var pool poolheap.Pool
		pool.Init(4096)
		Reset(func() { pool.Deinit() })

		l := list.New(&pool)

		Convey("An empty list displays a sentinel line", func() {
			var buf bytes.Buffer
			l.Display(&buf)

			So(buf.String(), ShouldEqual, "The list is empty.\n")
			So(l.Count(), ShouldEqual, 0)
			So(l.Head().IsSome(), ShouldBeFalse)
		})

		Convey("Insert appends values and becomes the head when empty", func() {
			l.Insert(1)
			l.Insert(2)
			l.Insert(3)

			So(l.Count(), ShouldEqual, 3)

			var buf bytes.Buffer
			l.Display(&buf)
			So(buf.String(), ShouldEqual, "[1 , 2 , 3 , ]\n")
		})

		Convey("Search finds an existing value and misses an absent one", func() {
			l.Insert(10)
			l.Insert(20)

			found := l.Search(20)
			So(found.IsSome(), ShouldBeTrue)

			So(l.Search(99).IsSome(), ShouldBeFalse)
		})

		Convey("InsertAfter splices a node immediately following the given one", func() {
			l.Insert(1)
			l.Insert(3)
			first := l.Head().Unwrap()

			l.InsertAfter(first, 2)

			var buf bytes.Buffer
			l.Display(&buf)
			So(buf.String(), ShouldEqual, "[1 , 2 , 3 , ]\n")
		})

		Convey("InsertBefore targeting the head updates the head", func() {
			l.Insert(2)
			head := l.Head().Unwrap()

			l.InsertBefore(head, 1)

			So(l.Head().Unwrap(), ShouldNotEqual, head)

			var buf bytes.Buffer
			l.Display(&buf)
			So(buf.String(), ShouldEqual, "[1 , 2 , ]\n")
		})

		Convey("InsertBefore targeting an unreachable node releases the orphan", func() {
			l.Insert(1)
			used := pool.Used()

			orphan := poolheap.Addr(999999)
			l.InsertBefore(orphan, 42)

			So(l.Count(), ShouldEqual, 1)
			So(pool.Used(), ShouldEqual, used)
		})

		Convey("Delete removes the first matching node and frees its storage", func() {
			l.Insert(1)
			l.Insert(2)
			l.Insert(2)
			used := pool.Used()

			l.Delete(2)

			So(l.Count(), ShouldEqual, 2)
			So(pool.Used(), ShouldBeLessThan, used)

			var buf bytes.Buffer
			l.Display(&buf)
			So(buf.String(), ShouldEqual, "[1 , 2 , ]\n")
		})

		Convey("Delete on a missing value is a no-op", func() {
			l.Insert(1)
			l.Delete(404)

			So(l.Count(), ShouldEqual, 1)
		})

		Convey("DisplayRange bounds the printed span", func() {
			l.Insert(1)
			l.Insert(2)
			l.Insert(3)
			l.Insert(4)

			mid := l.Search(2).Unwrap()
			last := l.Search(3).Unwrap()

			var buf bytes.Buffer
			l.DisplayRange(&buf, opt.Some(mid), opt.Some(last))

			So(buf.String(), ShouldEqual, "[2 , 3 , ]\n")
		})

		Convey("Cleanup frees every node and resets the list to empty", func() {
			l.Insert(1)
			l.Insert(2)
			l.Insert(3)

			l.Cleanup()

			So(l.Count(), ShouldEqual, 0)
			So(pool.Used(), ShouldEqual, 0)
			So(l.Head().IsSome(), ShouldBeFalse)
		})
	})
}
