package jsonvisit

import "strings"

// Path is an immutable, append-only location within a document, expressed as
// an ordered sequence of segments (object keys or stringified array indices).
// The zero value is the document root.
type Path struct {
	segments []string
}

// Root returns the empty path locating the document root.
func Root() Path { return Path{} }

// WithSegment returns a new Path with segment appended. The receiver is
// unchanged; the returned path never shares its backing storage with later
// appends on the receiver.
func (p Path) WithSegment(segment string) Path {
	segs := make([]string, 0, len(p.segments)+1)
	segs = append(segs, p.segments...)
	segs = append(segs, segment)
	return Path{segments: segs}
}

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Len reports the number of segments.
func (p Path) Len() int { return len(p.segments) }

// Equal reports whether two paths have identical segment sequences.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, s := range p.segments {
		if other.segments[i] != s {
			return false
		}
	}
	return true
}

// escape '~' -> '~0', '/' -> '~1' per RFC6901
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as a JSON Pointer string. The root renders as "/".
func (p Path) Pointer() string {
	if len(p.segments) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p.segments {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(s))
	}
	return b.String()
}

// String returns the JSON Pointer rendering.
func (p Path) String() string { return p.Pointer() }
