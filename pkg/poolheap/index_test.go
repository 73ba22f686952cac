package poolheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddrIndex(t *testing.T) {
	t.Parallel()

	idx := newAddrIndex()

	r1 := &record{addr: 0, size: 10, free: true}
	r2 := &record{addr: 10, size: 20, free: false}

	idx.put(r1)
	idx.put(r2)

	assert.Same(t, r1, idx.get(0))
	assert.Same(t, r2, idx.get(10))
	assert.Nil(t, idx.get(999))

	idx.remove(0)
	assert.Nil(t, idx.get(0))
	assert.Same(t, r2, idx.get(10))
}

func TestAddrIndexPutReplaces(t *testing.T) {
	t.Parallel()

	idx := newAddrIndex()

	r1 := &record{addr: 5, size: 10, free: true}
	idx.put(r1)

	r2 := &record{addr: 5, size: 999, free: false}
	idx.put(r2)

	assert.Same(t, r2, idx.get(5))
}

func TestAddrIndexGrows(t *testing.T) {
	t.Parallel()

	idx := newAddrIndex()

	for i := 0; i < initialBucketCount*4; i++ {
		idx.put(&record{addr: Addr(i), size: 1, free: true})
	}

	assert.Greater(t, len(idx.buckets), initialBucketCount)

	for i := 0; i < initialBucketCount*4; i++ {
		r := idx.get(Addr(i))
		if assert.NotNil(t, r) {
			assert.Equal(t, Addr(i), r.addr)
		}
	}
}
