package buildinfo

import "math/bits"

const latestBit = uint64(1) << 63

// Range is a set of builds plus an optional "latest" sentinel.
// The zero value is the empty range.
type Range struct {
	bits uint64
}

// NewRange returns a range holding the given builds.
func NewRange(ids ...BuildID) Range {
	return Range{}.With(ids...)
}

// FromTo returns the inclusive range lo..hi.
func FromTo(lo, hi BuildID) Range {
	if lo > hi {
		lo, hi = hi, lo
	}
	var r Range
	for id := lo; id <= hi && id <= MaxBuildID; id++ {
		r = r.With(id)
	}
	return r
}

// Latest returns a range holding only the sentinel.
func Latest() Range {
	return Range{bits: latestBit}
}

// With returns a copy of r with ids added. Ids outside 1..MaxBuildID are ignored.
func (r Range) With(ids ...BuildID) Range {
	for _, id := range ids {
		if id == 0 || id > MaxBuildID {
			continue
		}
		r.bits |= 1 << uint(id)
	}
	return r
}

// WithLatest returns a copy of r with the latest sentinel set.
func (r Range) WithLatest() Range {
	r.bits |= latestBit
	return r
}

// Union merges two ranges.
func (r Range) Union(o Range) Range {
	return Range{bits: r.bits | o.bits}
}

// Contains reports whether the explicit bit for id is set.
// It ignores the latest sentinel; use Gate.Applies for full evaluation.
func (r Range) Contains(id BuildID) bool {
	if id == 0 || id > MaxBuildID {
		return false
	}
	return r.bits&(1<<uint(id)) != 0
}

// HasLatest reports whether the sentinel is set.
func (r Range) HasLatest() bool {
	return r.bits&latestBit != 0
}

// IsEmpty reports whether r holds neither builds nor the sentinel.
func (r Range) IsEmpty() bool {
	return r.bits == 0
}

// Lowest returns the lowest explicit build, or false when there is none.
func (r Range) Lowest() (BuildID, bool) {
	explicit := r.bits &^ latestBit
	if explicit == 0 {
		return 0, false
	}
	return BuildID(bits.TrailingZeros64(explicit)), true
}

// Highest returns the highest explicit build, or false when there is none.
func (r Range) Highest() (BuildID, bool) {
	explicit := r.bits &^ latestBit
	if explicit == 0 {
		return 0, false
	}
	return BuildID(63 - bits.LeadingZeros64(explicit)), true
}

// Builds lists the explicit builds in ascending order.
func (r Range) Builds() []BuildID {
	explicit := r.bits &^ latestBit
	ids := make([]BuildID, 0, bits.OnesCount64(explicit))
	for explicit != 0 {
		id := bits.TrailingZeros64(explicit)
		ids = append(ids, BuildID(id))
		explicit &^= 1 << uint(id)
	}
	return ids
}
