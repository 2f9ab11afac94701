package jsonvisit

import "encoding/json"

// Guard utilities for loader collaborators: each asserts the node's kind and
// returns the unwrapped value, or an invalid_type issue at the node's
// location. Guard failures are domain errors, not traversal errors; Accept
// propagates them untouched when raised inside a visitor.

func kindMismatch(n *Node, expected Kind) Issues {
	return Issues{IssueAt(n.at, CodeInvalidType,
		"expected "+expected.String()+", got "+n.kind.String(),
		map[string]any{"expected": expected.String(), "got": n.kind.String()})}
}

// RequireString asserts KindString and returns the string value.
func RequireString(n *Node) (string, error) {
	if n.kind != KindString {
		return "", kindMismatch(n, KindString)
	}
	return n.s, nil
}

// RequireBoolean asserts KindBoolean and returns the boolean value.
func RequireBoolean(n *Node) (bool, error) {
	if n.kind != KindBoolean {
		return false, kindMismatch(n, KindBoolean)
	}
	return n.b, nil
}

// RequireInteger asserts an integral KindNumber and returns it as int64.
func RequireInteger(n *Node) (int64, error) {
	if n.kind != KindNumber || !n.IsIntegral() {
		return 0, kindMismatch(n, KindNumber)
	}
	return n.num.Int64()
}

// RequireNumber asserts KindNumber and returns the preserved numeric text.
func RequireNumber(n *Node) (json.Number, error) {
	if n.kind != KindNumber {
		return "", kindMismatch(n, KindNumber)
	}
	return n.num, nil
}

// RequireArray asserts KindArray and returns the ordered child nodes.
func RequireArray(n *Node) ([]*Node, error) {
	if n.kind != KindArray {
		return nil, kindMismatch(n, KindArray)
	}
	return n.Items(), nil
}

// RequireObject asserts KindObject and returns the key to child mapping.
func RequireObject(n *Node) (map[string]*Node, error) {
	if n.kind != KindObject {
		return nil, kindMismatch(n, KindObject)
	}
	return n.Fields(), nil
}
