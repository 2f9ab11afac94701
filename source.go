package jsonvisit

import (
	"io"

	eng "github.com/reoring/jsonvisit/internal/engine"
	jsonsrc "github.com/reoring/jsonvisit/source/json"
	yamlsrc "github.com/reoring/jsonvisit/source/yaml"
)

// TokenKind enumerates document token kinds. The values mirror the internal
// engine so adapters convert by value.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; NumberMode controls downstream interpretation.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	NumberMode() NumberMode
	Location() int64 // byte offset; -1 if unknown
}

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source {
	return SourceFromEngine(jsonsrc.NewReader(r), NumberJSONNumber)
}

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source {
	return SourceFromEngine(jsonsrc.NewBytes(b), NumberJSONNumber)
}

// YAMLReader wraps an io.Reader holding one YAML document as a Source.
func YAMLReader(r io.Reader) Source {
	return SourceFromEngine(yamlsrc.NewReader(r), NumberJSONNumber)
}

// YAMLBytes wraps a byte slice holding one YAML document as a Source.
func YAMLBytes(b []byte) Source {
	return SourceFromEngine(yamlsrc.NewBytes(b), NumberJSONNumber)
}

// SourceFromEngine wraps an engine.TokenSource as a Source. Callers choose the
// NumberMode to inherit subtree context.
func SourceFromEngine(inner eng.TokenSource, mode NumberMode) Source {
	return &engineSourceAdapter{inner: inner, numMode: mode}
}

// WithNumberMode returns a Source identical to src but decoding numbers per mode.
func WithNumberMode(src Source, mode NumberMode) Source {
	return &engineSourceAdapter{inner: &tokenSourceAdapter{inner: src}, numMode: mode}
}

type engineSourceAdapter struct {
	inner   eng.TokenSource
	numMode NumberMode
}

func (a *engineSourceAdapter) NextToken() (Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *engineSourceAdapter) NumberMode() NumberMode { return a.numMode }
func (a *engineSourceAdapter) Location() int64        { return a.inner.Location() }

type tokenSourceAdapter struct {
	inner Source
}

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }
