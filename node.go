package jsonvisit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the classified shape of a document value. The set is closed:
// every legal document value maps to exactly one Kind.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindNull:    "Null",
		KindBoolean: "Boolean",
		KindNumber:  "Number",
		KindString:  "String",
		KindArray:   "Array",
		KindObject:  "Object",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// nullMarker is the canonical explicit-null sentinel. Some producers
// distinguish "key set to null" from "key absent" by using a marker value
// instead of a nil interface; both classify as KindNull.
type nullMarker struct{}

func (nullMarker) String() string { return "null" }

// Null is the canonical null marker. NewNode treats Null and a nil interface
// identically.
var Null = nullMarker{}

// Node wraps one raw document value together with the Path locating it.
// Classification happens once at construction; a Node is immutable afterwards,
// so concurrent traversals of the same tree need no locking.
type Node struct {
	kind Kind
	at   Path

	b      bool
	s      string
	num    json.Number
	items  []*Node
	fields map[string]*Node
}

// NewNode classifies a raw document value and wraps it, recursively wrapping
// the children of arrays and objects at their extended locations. Values
// outside the six recognized shapes yield an unsupported_value issue naming
// the offending Go type and the location.
func NewNode(v any, at Path) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return &Node{kind: KindNull, at: at}, nil
	case nullMarker:
		return &Node{kind: KindNull, at: at}, nil
	case bool:
		return &Node{kind: KindBoolean, at: at, b: x}, nil
	case []any:
		items := make([]*Node, len(x))
		for i, el := range x {
			child, err := NewNode(el, at.WithSegment(strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return &Node{kind: KindArray, at: at, items: items}, nil
	case map[string]any:
		fields := make(map[string]*Node, len(x))
		for k, el := range x {
			child, err := NewNode(el, at.WithSegment(k))
			if err != nil {
				return nil, err
			}
			fields[k] = child
		}
		return &Node{kind: KindObject, at: at, fields: fields}, nil
	case string:
		return &Node{kind: KindString, at: at, s: x}, nil
	case json.Number:
		return &Node{kind: KindNumber, at: at, num: x}, nil
	case float64:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatFloat(x, 'g', -1, 64))}, nil
	case float32:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatFloat(float64(x), 'g', -1, 32))}, nil
	case int:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatInt(int64(x), 10))}, nil
	case int8:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatInt(int64(x), 10))}, nil
	case int16:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatInt(int64(x), 10))}, nil
	case int32:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatInt(int64(x), 10))}, nil
	case int64:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatInt(x, 10))}, nil
	case uint:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatUint(uint64(x), 10))}, nil
	case uint8:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatUint(uint64(x), 10))}, nil
	case uint16:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatUint(uint64(x), 10))}, nil
	case uint32:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatUint(uint64(x), 10))}, nil
	case uint64:
		return &Node{kind: KindNumber, at: at, num: json.Number(strconv.FormatUint(x, 10))}, nil
	default:
		return nil, Issues{IssueAt(at, CodeUnsupportedValue,
			fmt.Sprintf("unsupported value of type %T", v),
			map[string]any{"type": fmt.Sprintf("%T", v)})}
	}
}

// MustNode is NewNode for literals known to be well formed; it panics on
// classification failure.
func MustNode(v any, at Path) *Node {
	n, err := NewNode(v, at)
	if err != nil {
		panic(err)
	}
	return n
}

// Kind returns the classification decided at construction.
func (n *Node) Kind() Kind { return n.kind }

// Location returns the node's own path within the document.
func (n *Node) Location() Path { return n.at }

// Bool returns the boolean value; only meaningful for KindBoolean.
func (n *Node) Bool() bool { return n.b }

// Str returns the string value; only meaningful for KindString.
func (n *Node) Str() string { return n.s }

// Number returns the numeric value; only meaningful for KindNumber. The
// textual representation is preserved, so integral source values stay
// integral.
func (n *Node) Number() json.Number { return n.num }

// IsIntegral reports whether a KindNumber node holds a mathematically integral
// value representable as int64.
func (n *Node) IsIntegral() bool {
	if n.kind != KindNumber {
		return false
	}
	if strings.ContainsAny(string(n.num), ".eE") {
		return false
	}
	_, err := n.num.Int64()
	return err == nil
}

// Items returns a copy of the ordered child sequence; only meaningful for
// KindArray.
func (n *Node) Items() []*Node {
	return append([]*Node(nil), n.items...)
}

// Fields returns a copy of the key to child mapping; only meaningful for
// KindObject.
func (n *Node) Fields() map[string]*Node {
	m := make(map[string]*Node, len(n.fields))
	for k, c := range n.fields {
		m[k] = c
	}
	return m
}

// Equal reports structural equality: kind, location and content must all
// match, recursively for arrays and objects.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind || !n.at.Equal(other.at) {
		return false
	}
	switch n.kind {
	case KindNull:
		return true
	case KindBoolean:
		return n.b == other.b
	case KindString:
		return n.s == other.s
	case KindNumber:
		return n.num == other.num
	case KindArray:
		if len(n.items) != len(other.items) {
			return false
		}
		for i, c := range n.items {
			if !c.Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(n.fields) != len(other.fields) {
			return false
		}
		for k, c := range n.fields {
			oc, ok := other.fields[k]
			if !ok || !c.Equal(oc) {
				return false
			}
		}
		return true
	}
	return false
}
