// Package entities validates the extracted-entity payload returned by the
// triage API. The payload arrives as a JSON-encoded string holding a flat
// object; absent values are spelled as null, "" or the string "null".
package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const snippetRunes = 120

// Field is one surviving key/value pair. Label is Key made readable.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Entities keeps fields in the order the server sent them.
type Entities struct {
	Fields []Field `json:"fields"`
}

// Empty reports whether nothing is left to show.
func (e *Entities) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Get returns the value stored under key.
func (e *Entities) Get(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// ParseError is returned when the payload is not valid JSON.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entities: malformed JSON %q: %v", Snippet(e.Raw), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError is returned for valid JSON of the wrong shape: a top-level value
// that is not an object, or a field holding an object or an array.
type ShapeError struct {
	Key  string
	Kind string
}

func (e *ShapeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("entities: expected a JSON object, got %s", e.Kind)
	}
	return fmt.Sprintf("entities: field %q holds %s, want a scalar", e.Key, e.Kind)
}

// Parse decodes raw and drops empty values. It never panics; every rejection
// is a *ParseError or a *ShapeError.
func Parse(raw string) (*Entities, error) {
	data := []byte(raw)
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = fmt.Errorf("invalid JSON")
		}
		return nil, &ParseError{Raw: raw, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ShapeError{Kind: kindOfToken(tok)}
	}

	caser := cases.Title(language.Und, cases.NoLower)
	out := &Entities{}
	index := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Raw: raw, Err: err}
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &ParseError{Raw: raw, Err: err}
		}

		text, keep, err := scalarText(key, value)
		if err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			if keep {
				out.Fields[i].Value = text
			}
			continue
		}
		if !keep {
			continue
		}
		index[key] = len(out.Fields)
		out.Fields = append(out.Fields, Field{Key: key, Label: label(caser, key), Value: text})
	}
	return out, nil
}

// scalarText renders a field value; keep is false for absent values.
func scalarText(key string, value json.RawMessage) (string, bool, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return "", false, nil
	}
	switch trimmed[0] {
	case 'n':
		return "", false, nil
	case '{':
		return "", false, &ShapeError{Key: key, Kind: "an object"}
	case '[':
		return "", false, &ShapeError{Key: key, Kind: "an array"}
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false, &ParseError{Raw: string(value), Err: err}
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "null" {
			return "", false, nil
		}
		return s, true, nil
	default:
		return string(trimmed), true, nil
	}
}

func kindOfToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "an array"
		}
		return "a delimiter"
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}

func label(caser cases.Caser, key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return key
	}
	return caser.String(strings.Join(words, " "))
}

// Snippet shortens raw payloads for error messages and panels.
func Snippet(raw string) string {
	if utf8.RuneCountInString(raw) <= snippetRunes {
		return raw
	}
	runes := []rune(raw)
	return string(runes[:snippetRunes]) + "…"
}
