package handlers

import "iter"

// collect drains seq into a slice that encodes as [] rather than null.
func collect[T any](seq iter.Seq[T]) []T {
	out := []T{}
	for v := range seq {
		out = append(out, v)
	}
	return out
}
