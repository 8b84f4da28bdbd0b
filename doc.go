/*
Package dafsa builds minimal deterministic acyclic finite-state automata
(DAFSA, also known as DAWG) from collections of sequences, and compacts
them into a flat, serializable, pointer-free array.

Sequences are ordered lists of string elements - usually one character
per element, but any tokenization works. They must be added in
non-decreasing lexicographic order; FromSequences and FromWords sort for
you. Minimization is interleaved with insertion: as soon as the common
prefix with the next sequence is known, everything past it is folded
against previously registered equivalent nodes, so memory stays bounded
by the automaton, not the trie.

After Finish, the graph answers exact lookups, prefix checks, wildcard
searches ('?' for one element, '*' for any run) and bounded
edit-distance searches, each with occurrence counts when weight
collection is enabled. Compact lays the automaton out as a single array
with index-based pointers, deduplicating children lists and greedily
merging lists that form the tail of a larger sibling group; the array
answers the same queries, is immutable, safe for concurrent reads, and
is the canonical on-disk form (Save/Load, mmap-backed).

Construction is single-threaded; do not query an automaton while it is
still being built.
*/
package dafsa
