package dafsa

import (
	"bytes"
	"fmt"
	"io"
	"math/bits"
	"os"

	"golang.org/x/exp/mmap"
)

// The on-disk form is the entry sequence in emission order, bit-packed:
//
//	uint32  total size in bytes
//	8 bits  format version
//	8 bits  cbits - width of a value index
//	8 bits  abits - width of a child index
//	8 bits  wbits - width of a weight
//	7code   number of entries
//	7code   number of sequences
//	7code   alphabet size, then each token length-prefixed
//	per entry: value index (cbits), group-end (1), terminal (1),
//	           child (abits), weight (wbits)
//
// Value index 0 stands for the empty value of the two synthetic entries;
// token i of the sorted alphabet is index i+1. Decoding reconstructs the
// exact indices, so a decoded array is byte-identical when re-encoded.

const diskVersion = 1

// Save writes the array to a file. Returns the number of bytes written.
func (a *CompactArray) Save(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return a.Write(f)
}

// Write encodes the array to w. Returns the number of bytes written.
func (a *CompactArray) Write(w io.Writer) (int64, error) {
	valueIndex := make(map[string]uint64, len(a.alphabet))
	for i, token := range a.alphabet {
		valueIndex[token] = uint64(i + 1)
	}

	maxWeight := 0
	for _, e := range a.entries {
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}
	cbits := bitWidth(uint64(len(a.alphabet)))
	abits := bitWidth(uint64(len(a.entries) - 1))
	wbits := bitWidth(uint64(maxWeight))

	var payload bytes.Buffer
	bw := newBitWriter(&payload)
	bw.WriteBits(uint64(diskVersion), 8)
	bw.WriteBits(uint64(cbits), 8)
	bw.WriteBits(uint64(abits), 8)
	bw.WriteBits(uint64(wbits), 8)
	bw.WriteUvarint(uint64(len(a.entries)))
	bw.WriteUvarint(uint64(a.numSeqs))
	bw.WriteUvarint(uint64(len(a.alphabet)))
	for _, token := range a.alphabet {
		bw.WriteString(token)
	}

	for _, e := range a.entries {
		bw.WriteBits(valueIndex[e.Value], cbits)
		bw.WriteBits(boolBit(e.GroupEnd), 1)
		bw.WriteBits(boolBit(e.Terminal), 1)
		bw.WriteBits(uint64(e.Child), abits)
		bw.WriteBits(uint64(e.Weight), wbits)
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}

	size := int64(4 + payload.Len())
	head := []byte{
		byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size),
	}
	if _, err := w.Write(head); err != nil {
		return 0, err
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return 0, err
	}
	return size, nil
}

// Read decodes an array from r.
func Read(r io.ReaderAt) (*CompactArray, error) {
	bs := newBitSeeker(r)
	bs.Seek(32) // skip the size field

	if v := bs.ReadBits(8); v != diskVersion {
		if err := bs.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("dafsa: unsupported format version %d", v)
	}
	cbits := int64(bs.ReadBits(8))
	abits := int64(bs.ReadBits(8))
	wbits := int64(bs.ReadBits(8))
	numEntries := int(bs.ReadUvarint())
	numSeqs := int(bs.ReadUvarint())

	alphabet := make([]string, int(bs.ReadUvarint()))
	for i := range alphabet {
		alphabet[i] = bs.ReadString()
	}

	entries := make([]ArrayEntry, numEntries)
	for i := range entries {
		value := bs.ReadBits(cbits)
		groupEnd := bs.ReadBits(1) == 1
		terminal := bs.ReadBits(1) == 1
		child := int(bs.ReadBits(abits))
		weight := int(bs.ReadBits(wbits))

		e := ArrayEntry{GroupEnd: groupEnd, Terminal: terminal, Child: child, Weight: weight}
		if value > 0 {
			if int(value) > len(alphabet) {
				return nil, fmt.Errorf("dafsa: entry %d references value index %d outside the alphabet", i, value)
			}
			e.Value = alphabet[value-1]
		}
		entries[i] = e
	}
	if err := bs.Err(); err != nil {
		return nil, err
	}

	return &CompactArray{entries: entries, alphabet: alphabet, numSeqs: numSeqs}, nil
}

// Load reads an array from a file. The file is mapped rather than read
// up front, so decoding large automata does not double the peak memory.
func Load(filename string) (*CompactArray, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Read(r)
}

// bitWidth returns the number of bits needed to represent v, at least 1.
func bitWidth(v uint64) int {
	if v == 0 {
		return 1
	}
	return bits.Len64(v)
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
