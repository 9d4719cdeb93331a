package phraseidx

import (
	"bufio"
	"encoding/binary"
	"io"
	"sort"

	"github.com/bastiangx/geophrase/pkg/errs"
)

// magic identifies a geophrase phrase trie file. The on-disk file is named
// phrase.fst per the on-disk layout convention, but its contents are this
// module's own flat byte-trie encoding, not a vellum automaton — see
// DESIGN.md for why the combinatorial walk needed a hand-built structure.
var magic = [4]byte{'G', 'P', 'H', 'R'}

const formatVersion = 1

type child struct {
	b   byte
	idx int32
}

type node struct {
	children   []child
	final      bool
	finalBelow bool // final at this node or any descendant
}

// Trie is an opened, read-only PhraseIndex acceptor.
type Trie struct {
	nodes []node
	root  int32
}

// Builder accumulates phrase keys (already BE3-encoded) and produces a
// finalized Trie.
type Builder struct {
	nodes []node
}

// NewBuilder creates an empty phrase trie builder, seeded with a root node.
func NewBuilder() *Builder {
	return &Builder{nodes: []node{{}}}
}

// Insert adds one phrase key (the concatenation of its words' BE3 ids).
// Keys may be inserted in any order; Insert is idempotent for repeated
// keys.
func (b *Builder) Insert(key []byte) {
	cur := int32(0)
	for _, byt := range key {
		next := b.childIndex(cur, byt)
		if next < 0 {
			b.nodes = append(b.nodes, node{})
			newIdx := int32(len(b.nodes) - 1)
			b.insertChild(cur, byt, newIdx)
			cur = newIdx
		} else {
			cur = next
		}
	}
	b.nodes[cur].final = true
}

func (b *Builder) childIndex(n int32, byt byte) int32 {
	children := b.nodes[n].children
	i := sort.Search(len(children), func(i int) bool { return children[i].b >= byt })
	if i < len(children) && children[i].b == byt {
		return children[i].idx
	}
	return -1
}

func (b *Builder) insertChild(n int32, byt byte, childIdx int32) {
	children := b.nodes[n].children
	i := sort.Search(len(children), func(i int) bool { return children[i].b >= byt })
	children = append(children, child{})
	copy(children[i+1:], children[i:])
	children[i] = child{b: byt, idx: childIdx}
	b.nodes[n].children = children
}

// Finish computes final-state reachability for every node and returns the
// immutable Trie.
func (b *Builder) Finish() *Trie {
	var visit func(n int32) bool
	visited := make([]bool, len(b.nodes))
	visit = func(n int32) bool {
		if visited[n] {
			return b.nodes[n].finalBelow
		}
		visited[n] = true
		below := b.nodes[n].final
		for _, c := range b.nodes[n].children {
			if visit(c.idx) {
				below = true
			}
		}
		b.nodes[n].finalBelow = below
		return below
	}
	visit(0)
	return &Trie{nodes: b.nodes, root: 0}
}

// WriteTo serializes the trie in this module's flat binary format.
func (t *Trie) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return errs.NewBuildError("phraseidx.WriteTo", err)
	}
	if err := bw.WriteByte(formatVersion); err != nil {
		return errs.NewBuildError("phraseidx.WriteTo", err)
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(t.nodes)))
	if _, err := bw.Write(lenBuf[:]); err != nil {
		return errs.NewBuildError("phraseidx.WriteTo", err)
	}

	for _, n := range t.nodes {
		flags := byte(0)
		if n.final {
			flags |= 1
		}
		if n.finalBelow {
			flags |= 2
		}
		if err := bw.WriteByte(flags); err != nil {
			return errs.NewBuildError("phraseidx.WriteTo", err)
		}
		var childCountBuf [2]byte
		binary.BigEndian.PutUint16(childCountBuf[:], uint16(len(n.children)))
		if _, err := bw.Write(childCountBuf[:]); err != nil {
			return errs.NewBuildError("phraseidx.WriteTo", err)
		}
		for _, c := range n.children {
			if err := bw.WriteByte(c.b); err != nil {
				return errs.NewBuildError("phraseidx.WriteTo", err)
			}
			var idxBuf [4]byte
			binary.BigEndian.PutUint32(idxBuf[:], uint32(c.idx))
			if _, err := bw.Write(idxBuf[:]); err != nil {
				return errs.NewBuildError("phraseidx.WriteTo", err)
			}
		}
	}
	return bw.Flush()
}

// ReadFrom parses a trie previously written by WriteTo.
func ReadFrom(r io.Reader) (*Trie, error) {
	br := bufio.NewReader(r)
	var gotMagic [4]byte
	if _, err := io.ReadFull(br, gotMagic[:]); err != nil {
		return nil, errs.NewOpenError("phrase.fst", err)
	}
	if gotMagic != magic {
		return nil, errs.NewOpenError("phrase.fst", errBadMagic)
	}
	version, err := br.ReadByte()
	if err != nil {
		return nil, errs.NewOpenError("phrase.fst", err)
	}
	if version != formatVersion {
		return nil, errs.NewOpenError("phrase.fst", errVersionMismatch)
	}

	var countBuf [4]byte
	if _, err := io.ReadFull(br, countBuf[:]); err != nil {
		return nil, errs.NewOpenError("phrase.fst", err)
	}
	count := binary.BigEndian.Uint32(countBuf[:])
	nodes := make([]node, count)

	for i := range nodes {
		flags, err := br.ReadByte()
		if err != nil {
			return nil, errs.NewOpenError("phrase.fst", err)
		}
		nodes[i].final = flags&1 != 0
		nodes[i].finalBelow = flags&2 != 0

		var childCountBuf [2]byte
		if _, err := io.ReadFull(br, childCountBuf[:]); err != nil {
			return nil, errs.NewOpenError("phrase.fst", err)
		}
		childCount := binary.BigEndian.Uint16(childCountBuf[:])
		children := make([]child, childCount)
		for j := range children {
			b, err := br.ReadByte()
			if err != nil {
				return nil, errs.NewOpenError("phrase.fst", err)
			}
			var idxBuf [4]byte
			if _, err := io.ReadFull(br, idxBuf[:]); err != nil {
				return nil, errs.NewOpenError("phrase.fst", err)
			}
			children[j] = child{b: b, idx: int32(binary.BigEndian.Uint32(idxBuf[:]))}
		}
		nodes[i].children = children
	}

	return &Trie{nodes: nodes, root: 0}, nil
}
