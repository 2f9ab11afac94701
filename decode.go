package jsonvisit

import (
	"errors"

	eng "github.com/reoring/jsonvisit/internal/engine"
)

// DecodeDocument consumes the Source, builds the raw value tree, and wraps it
// as a Node located at the document root. This is the composition point
// between the parser collaborator and the traversal engine.
func DecodeDocument(src Source, opts ...DecodeOpt) (*Node, error) {
	v, err := DecodeAny(src, opts...)
	if err != nil {
		return nil, err
	}
	return NewNode(v, Root())
}

// DecodeAny consumes the Source and builds the raw any tree (map[string]any,
// []any, scalars) without wrapping it, for callers that run their own
// classification.
func DecodeAny(src Source, opts ...DecodeOpt) (any, error) {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	var sink func(eng.SimpleIssue)
	if opt.IssueSink != nil {
		outer := opt.IssueSink
		sink = func(si eng.SimpleIssue) {
			outer(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	enforced := eng.WrapWithEnforcement(&tokenSourceAdapter{inner: src}, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
		FailFast:    opt.FailFast,
	})
	var v any
	var err error
	switch src.NumberMode() {
	case NumberFloat64:
		v, err = eng.DecodeAnyFromSourceAsFloat64(enforced)
	default:
		v, err = eng.DecodeAnyFromSource(enforced)
	}
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// toIssues normalizes decode-layer failures into the Issues error model.
// Visitor-raised errors never pass through here; Accept propagates those
// untouched.
func toIssues(err error) error {
	if err == nil {
		return nil
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Path: ie.Path, Code: ie.Code, Message: ie.Message}}
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
