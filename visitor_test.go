package jsonvisit_test

import (
	"encoding/json"
	"errors"
	"testing"

	jsonvisit "github.com/reoring/jsonvisit"
)

// recordingVisitor stores every callback it receives so tests can assert on
// the calling contract without any mocking framework.
type recordingVisitor struct {
	calls    []visitCall
	override jsonvisit.Override[string]
}

type visitCall struct {
	method string
	at     jsonvisit.Path
	value  any
}

func (r *recordingVisitor) record(method string, at jsonvisit.Path, value any) {
	r.calls = append(r.calls, visitCall{method: method, at: at, value: value})
}

func (r *recordingVisitor) VisitNull(at jsonvisit.Path) (string, error) {
	r.record("null", at, nil)
	return "null", nil
}

func (r *recordingVisitor) VisitBoolean(v bool, at jsonvisit.Path) (string, error) {
	r.record("boolean", at, v)
	return "boolean", nil
}

func (r *recordingVisitor) VisitString(v string, at jsonvisit.Path) (string, error) {
	r.record("string", at, v)
	return "string", nil
}

func (r *recordingVisitor) VisitInteger(v int64, at jsonvisit.Path) (string, error) {
	r.record("integer", at, v)
	return "integer", nil
}

func (r *recordingVisitor) VisitNumber(v json.Number, at jsonvisit.Path) (string, error) {
	r.record("number", at, v)
	return "number", nil
}

func (r *recordingVisitor) VisitArray(items []*jsonvisit.Node, at jsonvisit.Path) (string, error) {
	r.record("array", at, items)
	return "array", nil
}

func (r *recordingVisitor) VisitObject(fields map[string]*jsonvisit.Node, at jsonvisit.Path) (string, error) {
	r.record("object", at, fields)
	return "object", nil
}

func (r *recordingVisitor) FinishedVisiting(at jsonvisit.Path) (jsonvisit.Override[string], error) {
	r.record("finished", at, nil)
	return r.override, nil
}

func acceptString(t *testing.T, v any, visitor jsonvisit.Visitor[string]) string {
	t.Helper()
	n := jsonvisit.MustNode(v, jsonvisit.Root())
	got, err := jsonvisit.Accept[string](n, visitor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func TestAccept_Boolean(t *testing.T) {
	rec := &recordingVisitor{}
	got := acceptString(t, true, rec)
	if got != "boolean" {
		t.Fatalf("expected handler result 'boolean', got %q", got)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("expected handler + finishing hook, got %v", rec.calls)
	}
	if rec.calls[0].method != "boolean" || rec.calls[0].value != true {
		t.Fatalf("unexpected handler call %+v", rec.calls[0])
	}
	if rec.calls[1].method != "finished" || !rec.calls[1].at.Equal(jsonvisit.Root()) {
		t.Fatalf("finishing hook not invoked with root location: %+v", rec.calls[1])
	}
}

func TestAccept_BoolArray(t *testing.T) {
	rec := &recordingVisitor{}
	got := acceptString(t, []any{true}, rec)
	if got != "array" {
		t.Fatalf("expected 'array', got %q", got)
	}
	items, ok := rec.calls[0].value.([]*jsonvisit.Node)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one-element child sequence, got %+v", rec.calls[0].value)
	}
	want := jsonvisit.MustNode(true, jsonvisit.Root().WithSegment("0"))
	if !items[0].Equal(want) {
		t.Fatalf("expected child equal to node(true, /0)")
	}
}

func TestAccept_String(t *testing.T) {
	rec := &recordingVisitor{}
	if got := acceptString(t, "string", rec); got != "string" {
		t.Fatalf("expected 'string', got %q", got)
	}
	if rec.calls[0].value != "string" {
		t.Fatalf("handler received %v", rec.calls[0].value)
	}
}

func TestAccept_NullMarkerAndNil(t *testing.T) {
	for _, in := range []any{nil, jsonvisit.Null} {
		rec := &recordingVisitor{}
		if got := acceptString(t, in, rec); got != "null" {
			t.Fatalf("input %v: expected 'null', got %q", in, got)
		}
		if rec.calls[0].method != "null" || !rec.calls[0].at.Equal(jsonvisit.Root()) {
			t.Fatalf("input %v: null handler not invoked with root location", in)
		}
	}
}

func TestAccept_Object(t *testing.T) {
	rec := &recordingVisitor{}
	if got := acceptString(t, map[string]any{"a": true}, rec); got != "object" {
		t.Fatalf("expected 'object', got %q", got)
	}
	fields, ok := rec.calls[0].value.(map[string]*jsonvisit.Node)
	if !ok || len(fields) != 1 {
		t.Fatalf("expected one-entry mapping, got %+v", rec.calls[0].value)
	}
	want := jsonvisit.MustNode(true, jsonvisit.Root().WithSegment("a"))
	if !fields["a"].Equal(want) {
		t.Fatalf("expected field 'a' equal to node(true, /a)")
	}
}

func TestAccept_EmptyObject(t *testing.T) {
	rec := &recordingVisitor{}
	if got := acceptString(t, map[string]any{}, rec); got != "object" {
		t.Fatalf("expected 'object', got %q", got)
	}
	fields := rec.calls[0].value.(map[string]*jsonvisit.Node)
	if len(fields) != 0 {
		t.Fatalf("expected empty mapping, got %v", fields)
	}
}

func TestAccept_IntegerVersusNumber(t *testing.T) {
	rec := &recordingVisitor{}
	if got := acceptString(t, json.Number("42"), rec); got != "integer" {
		t.Fatalf("expected integral dispatch, got %q", got)
	}
	if rec.calls[0].value != int64(42) {
		t.Fatalf("integer handler received %v", rec.calls[0].value)
	}

	rec = &recordingVisitor{}
	if got := acceptString(t, json.Number("1.5"), rec); got != "number" {
		t.Fatalf("expected fractional dispatch, got %q", got)
	}
	if rec.calls[0].value != json.Number("1.5") {
		t.Fatalf("number handler received %v", rec.calls[0].value)
	}
}

func TestAccept_FinisherOverridesResult(t *testing.T) {
	inputs := []any{true, "s", nil, json.Number("1"), []any{}, map[string]any{}}
	for _, in := range inputs {
		rec := &recordingVisitor{override: jsonvisit.Overridden("finish")}
		if got := acceptString(t, in, rec); got != "finish" {
			t.Fatalf("input %v: expected override 'finish', got %q", in, got)
		}
	}
}

func TestAccept_FinisherInvokedOncePerAccept(t *testing.T) {
	rec := &recordingVisitor{}
	acceptString(t, map[string]any{"a": true}, rec)
	finished := 0
	for _, c := range rec.calls {
		if c.method == "finished" {
			finished++
		}
	}
	// the engine does not auto-recurse; only the object node itself was accepted
	if finished != 1 {
		t.Fatalf("expected exactly one finishing call, got %d", finished)
	}
	last := rec.calls[len(rec.calls)-1]
	if last.method != "finished" {
		t.Fatalf("finishing hook must run after the kind handler, got %v", rec.calls)
	}
}

func TestAccept_ChildLocationsObservedDuringRecursion(t *testing.T) {
	seen := map[string]bool{}
	var visitor jsonvisit.Visitor[struct{}]
	rec := &locationRecorder{seen: seen}
	visitor = rec

	n := jsonvisit.MustNode([]any{true, false}, jsonvisit.Root())
	if _, err := jsonvisit.Accept[struct{}](n, visitor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen["/0:true"] || !seen["/1:false"] {
		t.Fatalf("array children observed wrong locations: %v", seen)
	}

	seen = map[string]bool{}
	rec.seen = seen
	n = jsonvisit.MustNode(map[string]any{"a": true, "b": false}, jsonvisit.Root())
	if _, err := jsonvisit.Accept[struct{}](n, visitor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen["/a:true"] || !seen["/b:false"] {
		t.Fatalf("object children observed wrong locations: %v", seen)
	}
}

// locationRecorder recurses into composites and records pointer:value pairs
// for the booleans it reaches.
type locationRecorder struct {
	jsonvisit.Base[struct{}]
	seen map[string]bool
}

func (l *locationRecorder) VisitBoolean(v bool, at jsonvisit.Path) (struct{}, error) {
	if v {
		l.seen[at.Pointer()+":true"] = true
	} else {
		l.seen[at.Pointer()+":false"] = true
	}
	return struct{}{}, nil
}

func (l *locationRecorder) VisitArray(items []*jsonvisit.Node, at jsonvisit.Path) (struct{}, error) {
	for _, item := range items {
		if _, err := jsonvisit.Accept[struct{}](item, l); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (l *locationRecorder) VisitObject(fields map[string]*jsonvisit.Node, at jsonvisit.Path) (struct{}, error) {
	for _, child := range fields {
		if _, err := jsonvisit.Accept[struct{}](child, l); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

// failingVisitor raises a fixed error from its boolean handler.
type failingVisitor struct {
	jsonvisit.Base[string]
	err      error
	finished int
}

func (f *failingVisitor) VisitBoolean(bool, jsonvisit.Path) (string, error) {
	return "", f.err
}

func (f *failingVisitor) FinishedVisiting(jsonvisit.Path) (jsonvisit.Override[string], error) {
	f.finished++
	return jsonvisit.Override[string]{}, nil
}

func TestAccept_HandlerErrorPropagatesUnchanged(t *testing.T) {
	sentinel := errors.New("abort traversal")
	f := &failingVisitor{err: sentinel}
	n := jsonvisit.MustNode(true, jsonvisit.Root())
	_, err := jsonvisit.Accept[string](n, f)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if f.finished != 0 {
		t.Fatalf("finishing hook must not run after a handler error")
	}
}

// finisherErrorVisitor raises from the finishing hook itself.
type finisherErrorVisitor struct {
	jsonvisit.Base[string]
	err error
}

func (f *finisherErrorVisitor) FinishedVisiting(jsonvisit.Path) (jsonvisit.Override[string], error) {
	return jsonvisit.Override[string]{}, f.err
}

func TestAccept_FinisherErrorPropagates(t *testing.T) {
	sentinel := errors.New("finisher failed")
	n := jsonvisit.MustNode("s", jsonvisit.Root())
	_, err := jsonvisit.Accept[string](n, &finisherErrorVisitor{err: sentinel})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

// guardingVisitor applies RequireString to the first array element, so guard
// failures surface through Accept untouched.
type guardingVisitor struct {
	jsonvisit.Base[string]
}

func (guardingVisitor) VisitArray(items []*jsonvisit.Node, at jsonvisit.Path) (string, error) {
	s, err := jsonvisit.RequireString(items[0])
	if err != nil {
		return "", err
	}
	return s, nil
}

func TestAccept_GuardErrorPropagatesThroughAccept(t *testing.T) {
	n := jsonvisit.MustNode([]any{true}, jsonvisit.Root())
	_, err := jsonvisit.Accept[string](n, guardingVisitor{})
	iss, ok := jsonvisit.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected guard Issues, got %v", err)
	}
	if iss[0].Code != jsonvisit.CodeInvalidType || iss[0].Path != "/0" {
		t.Fatalf("unexpected issue %+v", iss[0])
	}
}

func TestBase_DefaultsAreNoOps(t *testing.T) {
	n := jsonvisit.MustNode(map[string]any{"a": []any{true}}, jsonvisit.Root())
	got, err := jsonvisit.Accept[string](n, &struct{ jsonvisit.Base[string] }{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected zero result from Base, got %q", got)
	}
}
