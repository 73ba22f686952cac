// Package list implements a singly-linked list of uint16 values whose
// node storage comes from a [poolheap.Pool] rather than the Go heap,
// as a minimal demonstration consumer of the allocator.
//
// A List does not manage the lifetime of its Pool: the caller must
// Init the pool before constructing a List and Deinit it afterwards.
// This is deliberate: list.New calling Pool.Init on the caller's
// behalf would be a layering violation (the pool may be shared, or
// already live, or sized for more than one list).
package list

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/flier/poolheap/pkg/opt"
	"github.com/flier/poolheap/pkg/poolheap"
)

// nodeSize is 2 bytes for the uint16 payload plus 8 bytes for the
// little-endian int64 successor address (-1 meaning "no successor").
const nodeSize = 10

const noNext int64 = -1

// List is a singly-linked list of uint16 values backed by a
// [poolheap.Pool]. The zero value is not usable; use [New].
type List struct {
	pool *poolheap.Pool
	head opt.Option[poolheap.Addr]
}

// New constructs an empty List over an already-initialized pool.
func New(pool *poolheap.Pool) *List {
	return &List{pool: pool, head: opt.None[poolheap.Addr]()}
}

// Head returns the address of the first node, or None if the list is
// empty.
func (l *List) Head() opt.Option[poolheap.Addr] {
	return l.head
}

func (l *List) writeNode(addr poolheap.Addr, value uint16, next opt.Option[poolheap.Addr]) {
	buf := l.pool.View(addr, nodeSize)

	binary.LittleEndian.PutUint16(buf[0:2], value)

	n := noNext
	if next.IsSome() {
		n = int64(next.Unwrap())
	}
	binary.LittleEndian.PutUint64(buf[2:10], uint64(n))
}

func (l *List) readNode(addr poolheap.Addr) (value uint16, next opt.Option[poolheap.Addr]) {
	buf := l.pool.View(addr, nodeSize)

	value = binary.LittleEndian.Uint16(buf[0:2])

	if n := int64(binary.LittleEndian.Uint64(buf[2:10])); n != noNext {
		next = opt.Some(poolheap.Addr(n))
	}

	return value, next
}

func (l *List) valueOf(addr poolheap.Addr) uint16 {
	value, _ := l.readNode(addr)
	return value
}

func (l *List) nextOf(addr poolheap.Addr) opt.Option[poolheap.Addr] {
	_, next := l.readNode(addr)
	return next
}

func (l *List) setNext(addr poolheap.Addr, next opt.Option[poolheap.Addr]) {
	l.writeNode(addr, l.valueOf(addr), next)
}

// newNode allocates and initializes one node, reporting failure to
// stderr the way the original allocation-failure path did.
func (l *List) newNode(value uint16, next opt.Option[poolheap.Addr]) (poolheap.Addr, bool) {
	addrOpt := l.pool.Alloc(nodeSize)
	if addrOpt.IsNone() {
		fmt.Fprintln(os.Stderr, "list: memory allocation failed")
		return 0, false
	}

	addr := addrOpt.Unwrap()
	l.writeNode(addr, value, next)

	return addr, true
}

// Insert appends value at the tail of the list, or becomes the head if
// the list is empty.
func (l *List) Insert(value uint16) {
	addr, ok := l.newNode(value, opt.None[poolheap.Addr]())
	if !ok {
		return
	}

	if l.head.IsNone() {
		l.head = opt.Some(addr)
		return
	}

	tail := l.head.Unwrap()
	for next := l.nextOf(tail); next.IsSome(); next = l.nextOf(tail) {
		tail = next.Unwrap()
	}

	l.setNext(tail, opt.Some(addr))
}

// InsertAfter splices a new node holding value immediately after prev.
func (l *List) InsertAfter(prev poolheap.Addr, value uint16) {
	addr, ok := l.newNode(value, l.nextOf(prev))
	if !ok {
		return
	}

	l.setNext(prev, opt.Some(addr))
}

// InsertBefore splices a new node holding value immediately before
// succ, updating the head if succ is currently the head. If succ is
// not reachable from the current head, the newly allocated node is
// released and the list is left unchanged.
func (l *List) InsertBefore(succ poolheap.Addr, value uint16) {
	addr, ok := l.newNode(value, opt.Some(succ))
	if !ok {
		return
	}

	if l.head.IsSome() && l.head.Unwrap() == succ {
		l.head = opt.Some(addr)
		return
	}

	for cur := l.head; cur.IsSome(); {
		next := l.nextOf(cur.Unwrap())
		if next.IsSome() && next.Unwrap() == succ {
			l.setNext(cur.Unwrap(), opt.Some(addr))
			return
		}
		cur = next
	}

	// succ is not reachable from head: release the orphan node.
	l.pool.Free(addr)
}

// Delete removes the first node whose value equals value, freeing its
// storage. It is a no-op if no such node exists.
func (l *List) Delete(value uint16) {
	if l.head.IsNone() {
		return
	}

	cur := l.head.Unwrap()
	prev := opt.None[poolheap.Addr]()

	for {
		next := l.nextOf(cur)

		if l.valueOf(cur) == value {
			if prev.IsNone() {
				l.head = next
			} else {
				l.setNext(prev.Unwrap(), next)
			}
			l.pool.Free(cur)
			return
		}

		if next.IsNone() {
			return
		}
		prev = opt.Some(cur)
		cur = next.Unwrap()
	}
}

// Search returns the address of the first node whose value equals
// value, or None.
func (l *List) Search(value uint16) opt.Option[poolheap.Addr] {
	for cur := l.head; cur.IsSome(); {
		addr := cur.Unwrap()
		if l.valueOf(addr) == value {
			return opt.Some(addr)
		}
		cur = l.nextOf(addr)
	}

	return opt.None[poolheap.Addr]()
}

// Count returns the number of nodes in the list.
func (l *List) Count() int {
	n := 0
	for cur := l.head; cur.IsSome(); {
		n++
		cur = l.nextOf(cur.Unwrap())
	}
	return n
}

// Display writes every value in order to w, as "[v1 , v2 , ... , vk , ]".
// An empty list writes a sentinel line instead.
func (l *List) Display(w io.Writer) {
	l.DisplayRange(w, opt.None[poolheap.Addr](), opt.None[poolheap.Addr]())
}

// DisplayRange writes the values from start (or the head, if start is
// None) up to and including end (or the tail, if end is None).
func (l *List) DisplayRange(w io.Writer, start, end opt.Option[poolheap.Addr]) {
	if l.head.IsNone() {
		fmt.Fprintln(w, "The list is empty.")
		return
	}

	cur := l.head
	if start.IsSome() {
		cur = start
	}

	fmt.Fprint(w, "[")
	for cur.IsSome() {
		addr := cur.Unwrap()
		fmt.Fprintf(w, "%d , ", l.valueOf(addr))

		if end.IsSome() && addr == end.Unwrap() {
			break
		}
		cur = l.nextOf(addr)
	}
	fmt.Fprintln(w, "]")
}

// Cleanup frees every node and resets the list to empty.
func (l *List) Cleanup() {
	for cur := l.head; cur.IsSome(); {
		addr := cur.Unwrap()
		next := l.nextOf(addr)
		l.pool.Free(addr)
		cur = next
	}

	l.head = opt.None[poolheap.Addr]()
}
