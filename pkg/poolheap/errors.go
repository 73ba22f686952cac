package poolheap

import "fmt"

// InvalidAddressError is the diagnosed cause when Free or Resize is
// given an address that does not match any record's payload start,
// including an address that has already been freed.
type InvalidAddressError struct {
	Addr Addr
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("poolheap: invalid address %d", e.Addr)
}

// OutOfMemoryError is the diagnosed cause when Init cannot acquire the
// backing region from the host.
type OutOfMemoryError struct {
	Size int
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("poolheap: failed to allocate %d-byte pool", e.Size)
}

// DegenerateSizeError is the diagnosed cause when Init is given a size
// too small to host a single usable record.
type DegenerateSizeError struct {
	Size int
}

func (e *DegenerateSizeError) Error() string {
	return fmt.Sprintf("poolheap: pool size %d is too small to be useful", e.Size)
}

// AlreadyInitializedError is the diagnosed cause when the package-level
// singleton's Init is called while a pool is already live.
type AlreadyInitializedError struct{}

func (e *AlreadyInitializedError) Error() string {
	return "poolheap: pool already initialized"
}
