package poolheap

import "github.com/dolthub/maphash"

// addrIndex resolves an Addr to its owning record in O(1) average time,
// so Free and Resize do not need to walk the whole record chain on
// every call. It is purely an optimization over the next chain, which
// remains the source of truth for ordering, coverage and coalescing;
// the index is kept in lockstep with every mutation of that chain.
//
// Hashing is done with dolthub/maphash.Hasher, the same randomized
// hashing the pack's arena/swiss flat hash map uses to place keys into
// buckets; here it is scaled down to a plain chaining table since the
// record count is modest and ordering is already handled elsewhere.
type addrIndex struct {
	hasher  maphash.Hasher[Addr]
	buckets [][]*record
	count   int
}

const initialBucketCount = 16

func newAddrIndex() *addrIndex {
	return &addrIndex{
		hasher:  maphash.NewHasher[Addr](),
		buckets: make([][]*record, initialBucketCount),
	}
}

func (idx *addrIndex) bucket(addr Addr) int {
	return int(idx.hasher.Hash(addr) % uint64(len(idx.buckets)))
}

// put registers r under its current address, overwriting any previous
// entry for that address.
func (idx *addrIndex) put(r *record) {
	idx.remove(r.addr)

	b := idx.bucket(r.addr)
	idx.buckets[b] = append(idx.buckets[b], r)
	idx.count++

	if idx.count > len(idx.buckets)*3 {
		idx.grow()
	}
}

// remove drops any entry for addr.
func (idx *addrIndex) remove(addr Addr) {
	b := idx.bucket(addr)
	chain := idx.buckets[b]
	for i, r := range chain {
		if r.addr == addr {
			idx.buckets[b] = append(chain[:i], chain[i+1:]...)
			idx.count--
			return
		}
	}
}

// get resolves addr to its record, or nil if addr is not a known
// payload start.
func (idx *addrIndex) get(addr Addr) *record {
	for _, r := range idx.buckets[idx.bucket(addr)] {
		if r.addr == addr {
			return r
		}
	}
	return nil
}

func (idx *addrIndex) grow() {
	old := idx.buckets
	idx.buckets = make([][]*record, len(old)*2)
	idx.count = 0
	for _, chain := range old {
		for _, r := range chain {
			b := idx.bucket(r.addr)
			idx.buckets[b] = append(idx.buckets[b], r)
			idx.count++
		}
	}
}
