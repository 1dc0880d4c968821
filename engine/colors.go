package engine

import "hash/fnv"

// FunctionColor maps a function name to a stable display color. FNV-1a is
// stable across runs, so the same function gets the same color in every
// session; no cache is kept since the hash is cheaper than a map probe gone
// stale. Channels are remapped into [128,255] to stay readable on a dark
// background.
func FunctionColor(name string) RGBA {
	h := fnv.New64a()
	h.Write([]byte(name))
	sum := h.Sum64()

	r := uint8((sum >> 16) & 0xFF)
	g := uint8((sum >> 8) & 0xFF)
	b := uint8(sum & 0xFF)

	return RGBA{
		R: r/2 + 128,
		G: g/2 + 128,
		B: b/2 + 128,
		A: 255,
	}
}
