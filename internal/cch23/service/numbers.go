// Package service holds the cch23 challenge logic behind the HTTP handlers.
package service

import (
	pkgerrors "codehunt/pkg/errors"
)

// MaxPacketIDs bounds the number of ids accepted by CubeBits.
const MaxPacketIDs = 20

// CubeBits xors every id together and returns the cube of the result.
func CubeBits(ids []int64) (int64, error) {
	if len(ids) == 0 || len(ids) > MaxPacketIDs {
		return 0, pkgerrors.Newf(pkgerrors.InvalidParams, "between 1 and %d packet ids are required", MaxPacketIDs)
	}
	var x int64
	for _, id := range ids {
		x ^= id
	}
	return x * x * x, nil
}

// SliceOptions are the query parameters of the name slicer. Nil means unset.
type SliceOptions struct {
	Offset *int
	Limit  *int
	Split  *int
}

// SliceNames applies offset and limit to names, then optionally chunks the
// result into groups of Split. The result is []string or [][]string.
func SliceNames(names []string, opts SliceOptions) (any, error) {
	offset := 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if offset < 0 {
		return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "offset must not be negative")
	}
	if offset > len(names) {
		offset = len(names)
	}
	end := len(names)
	if opts.Limit != nil {
		if *opts.Limit < 0 {
			return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "limit must not be negative")
		}
		end = offset + min(*opts.Limit, len(names)-offset)
	}
	picked := names[offset:end]
	if opts.Split == nil {
		return picked, nil
	}
	size := *opts.Split
	if size <= 0 {
		return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "split must be positive")
	}
	chunks := make([][]string, 0, (len(picked)+size-1)/size)
	for start := 0; start < len(picked); start += size {
		chunks = append(chunks, picked[start:min(start+size, len(picked))])
	}
	return chunks, nil
}
