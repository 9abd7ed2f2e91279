// Package arena provides a bump allocator for hierarchical clustering tree
// nodes.
//
// A tree build allocates one node per internal split and one per leaf and
// never frees an individual node; the whole arena is discarded at once when
// a tree is rebuilt. Chunking keeps large forests from triggering slice
// copies on every growth step.
package arena
