package jsonvisit

import (
	"encoding/json"
	"sort"
)

// Index is a Visitor that walks a whole document and records every visited
// location. Kind handlers note the kind per pointer and recurse into
// composites; the finishing hook registers the pointer itself, so the ordered
// pointer list gets exactly one entry per visited node without every handler
// repeating the bookkeeping.
//
// Object fields are visited in sorted key order so the recorded sequence is
// deterministic; array elements keep document order.
type Index struct {
	pointers []string
	kinds    map[string]Kind
}

// NewIndex returns an empty location index.
func NewIndex() *Index {
	return &Index{kinds: make(map[string]Kind)}
}

// Pointers returns the visited locations in visit order.
func (ix *Index) Pointers() []string {
	return append([]string(nil), ix.pointers...)
}

// KindAt returns the kind recorded for a pointer.
func (ix *Index) KindAt(ptr string) (Kind, bool) {
	k, ok := ix.kinds[ptr]
	return k, ok
}

func (ix *Index) VisitNull(at Path) (struct{}, error) {
	ix.kinds[at.Pointer()] = KindNull
	return struct{}{}, nil
}

func (ix *Index) VisitBoolean(_ bool, at Path) (struct{}, error) {
	ix.kinds[at.Pointer()] = KindBoolean
	return struct{}{}, nil
}

func (ix *Index) VisitString(_ string, at Path) (struct{}, error) {
	ix.kinds[at.Pointer()] = KindString
	return struct{}{}, nil
}

func (ix *Index) VisitInteger(_ int64, at Path) (struct{}, error) {
	ix.kinds[at.Pointer()] = KindNumber
	return struct{}{}, nil
}

func (ix *Index) VisitNumber(_ json.Number, at Path) (struct{}, error) {
	ix.kinds[at.Pointer()] = KindNumber
	return struct{}{}, nil
}

func (ix *Index) VisitArray(items []*Node, at Path) (struct{}, error) {
	ix.kinds[at.Pointer()] = KindArray
	for _, item := range items {
		if _, err := Accept[struct{}](item, ix); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (ix *Index) VisitObject(fields map[string]*Node, at Path) (struct{}, error) {
	ix.kinds[at.Pointer()] = KindObject
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := Accept[struct{}](fields[k], ix); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (ix *Index) FinishedVisiting(at Path) (Override[struct{}], error) {
	ix.pointers = append(ix.pointers, at.Pointer())
	return Override[struct{}]{}, nil
}

// CollectPointers traverses the document rooted at n and returns every
// location in visit order (children before their parent, since the finishing
// hook runs after the composite handler has recursed).
func CollectPointers(n *Node) ([]string, error) {
	ix := NewIndex()
	if _, err := Accept[struct{}](n, ix); err != nil {
		return nil, err
	}
	return ix.Pointers(), nil
}
