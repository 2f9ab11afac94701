package jsonvisit

// NumberMode dictates how numbers in a decoded document are interpreted.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve json.Number (lossless, default).
	NumberFloat64                      // Fast mode (with potential precision loss).
)

// Severity expresses the severity level for decode-time issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt bundles document decoding options.
type DecodeOpt struct {
	OnDuplicateKey Severity // Duplicate object keys: Ignore, Warn (report via IssueSink), or Error.
	MaxDepth       int      // Maximum container nesting; 0 means unlimited.
	MaxBytes       int64    // Maximum consumed input bytes; 0 means unlimited.
	FailFast       bool     // Stop at the first issue even under Warn.
	// IssueSink receives non-fatal issues (e.g. duplicate keys under Warn).
	IssueSink func(Issue)
}
