package jsonvisit

import "encoding/json"

// Visitor is the capability consumed by Accept: one handler per value kind
// plus a finishing hook. Handlers receive the value appropriate to the kind
// and the location of the visited node. Accept never recurses into composite
// children on the visitor's behalf; a visitor that wants the whole subtree
// calls Accept on the child nodes it receives.
//
// Any error returned by a handler or by the finishing hook propagates out of
// Accept unchanged.
type Visitor[R any] interface {
	VisitNull(at Path) (R, error)
	VisitBoolean(v bool, at Path) (R, error)
	VisitString(v string, at Path) (R, error)
	// VisitInteger handles KindNumber nodes whose value is mathematically
	// integral and fits in int64.
	VisitInteger(v int64, at Path) (R, error)
	// VisitNumber handles the remaining KindNumber nodes.
	VisitNumber(v json.Number, at Path) (R, error)
	VisitArray(items []*Node, at Path) (R, error)
	VisitObject(fields map[string]*Node, at Path) (R, error)
	// FinishedVisiting runs after every kind handler, exactly once per Accept
	// call. A Valid override replaces the handler's result unconditionally.
	FinishedVisiting(at Path) (Override[R], error)
}

// Override is the finishing hook's optional result. The zero value means "do
// not override", which stays distinct from overriding with R's zero value.
type Override[R any] struct {
	Value R
	Valid bool
}

// Overridden wraps a value as a valid override.
func Overridden[R any](v R) Override[R] { return Override[R]{Value: v, Valid: true} }

// Accept dispatches the node to exactly one kind handler, then runs the
// finishing hook. The node's classification was decided at construction and
// is never revisited here.
func Accept[R any](n *Node, v Visitor[R]) (R, error) {
	var zero R
	var r R
	var err error
	switch n.kind {
	case KindNull:
		r, err = v.VisitNull(n.at)
	case KindBoolean:
		r, err = v.VisitBoolean(n.b, n.at)
	case KindString:
		r, err = v.VisitString(n.s, n.at)
	case KindNumber:
		if n.IsIntegral() {
			var i int64
			i, err = n.num.Int64()
			if err == nil {
				r, err = v.VisitInteger(i, n.at)
			}
		} else {
			r, err = v.VisitNumber(n.num, n.at)
		}
	case KindArray:
		r, err = v.VisitArray(n.Items(), n.at)
	case KindObject:
		r, err = v.VisitObject(n.Fields(), n.at)
	default:
		// unreachable for nodes built via NewNode
		return zero, singleIssue(n.at, CodeUnsupportedValue, "malformed node kind")
	}
	if err != nil {
		return zero, err
	}
	ov, err := v.FinishedVisiting(n.at)
	if err != nil {
		return zero, err
	}
	if ov.Valid {
		return ov.Value, nil
	}
	return r, nil
}

// Base is an embeddable no-op Visitor: every handler returns R's zero value
// and the finishing hook never overrides. Embed it and override the handlers
// of interest.
type Base[R any] struct{}

func (Base[R]) VisitNull(Path) (R, error)                  { var zero R; return zero, nil }
func (Base[R]) VisitBoolean(bool, Path) (R, error)         { var zero R; return zero, nil }
func (Base[R]) VisitString(string, Path) (R, error)        { var zero R; return zero, nil }
func (Base[R]) VisitInteger(int64, Path) (R, error)        { var zero R; return zero, nil }
func (Base[R]) VisitNumber(json.Number, Path) (R, error)   { var zero R; return zero, nil }
func (Base[R]) VisitArray([]*Node, Path) (R, error)        { var zero R; return zero, nil }
func (Base[R]) VisitObject(map[string]*Node, Path) (R, error) {
	var zero R
	return zero, nil
}
func (Base[R]) FinishedVisiting(Path) (Override[R], error) { return Override[R]{}, nil }
