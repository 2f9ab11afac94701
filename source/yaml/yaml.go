// Package yaml adapts YAML documents into the engine token stream so YAML
// input traverses through the same decode and enforcement pipeline as JSON.
// Only the first document of a multi-document stream is consumed.
package yaml

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/jsonvisit/internal/engine"
)

type source struct {
	toks []eng.Token
	err  error
	pos  int
}

// NewReader decodes one YAML document from r and replays it as tokens.
func NewReader(r io.Reader) eng.TokenSource {
	s := &source{}
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			// empty input is an empty document, i.e. a single null
			s.toks = []eng.Token{{Kind: eng.KindNull, Offset: -1}}
			return s
		}
		s.err = err
		return s
	}
	s.err = s.emit(doc)
	return s
}

// NewBytes decodes one YAML document from b and replays it as tokens.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, nil
}

func (s *source) Location() int64 { return -1 }

func (s *source) push(tok eng.Token) {
	tok.Offset = -1
	s.toks = append(s.toks, tok)
}

// emit flattens a decoded YAML value into tokens. Object keys are emitted in
// sorted order; YAML maps carry no reliable order once decoded into Go maps.
func (s *source) emit(v any) error {
	switch x := v.(type) {
	case nil:
		s.push(eng.Token{Kind: eng.KindNull})
	case bool:
		s.push(eng.Token{Kind: eng.KindBool, Bool: x})
	case string:
		s.push(eng.Token{Kind: eng.KindString, String: x})
	case int:
		s.push(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(int64(x), 10)})
	case int64:
		s.push(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(x, 10)})
	case uint64:
		s.push(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatUint(x, 10)})
	case float64:
		s.push(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(x, 'g', -1, 64)})
	case []any:
		s.push(eng.Token{Kind: eng.KindBeginArray})
		for _, el := range x {
			if err := s.emit(el); err != nil {
				return err
			}
		}
		s.push(eng.Token{Kind: eng.KindEndArray})
	case map[string]any:
		s.push(eng.Token{Kind: eng.KindBeginObject})
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.push(eng.Token{Kind: eng.KindKey, String: k})
			if err := s.emit(x[k]); err != nil {
				return err
			}
		}
		s.push(eng.Token{Kind: eng.KindEndObject})
	case map[any]any:
		// yaml.v3 produces map[any]any for non-string keys; stringify them
		// the same way the JSON data model requires.
		m := make(map[string]any, len(x))
		for k, vv := range x {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			m[ks] = vv
		}
		return s.emit(m)
	default:
		return fmt.Errorf("yaml: unsupported value of type %T", v)
	}
	return nil
}
