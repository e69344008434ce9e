package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExpectStatus fails the current check unless the response has the given status.
func (s *Session) ExpectStatus(res *Response, status int) error {
	if res.Status != status {
		return s.current
	}
	return nil
}

// ExpectText fails the current check unless the body equals text exactly.
func (s *Session) ExpectText(res *Response, text string) error {
	if res.Text() != text {
		return s.current
	}
	return nil
}

// ExpectPrefix fails the current check unless the body starts with prefix.
func (s *Session) ExpectPrefix(res *Response, prefix string) error {
	if !strings.HasPrefix(res.Text(), prefix) {
		return s.current
	}
	return nil
}

// ExpectJSON fails the current check unless the body is JSON equal to want.
func (s *Session) ExpectJSON(res *Response, want string) error {
	ok, err := JSONEqual(res.Body, []byte(want))
	if err != nil || !ok {
		return s.current
	}
	return nil
}

// ExpectHTML fails the current check unless the body is an equivalent HTML fragment.
func (s *Session) ExpectHTML(res *Response, want string) error {
	ok, err := HTMLEqual(want, res.Text())
	if err != nil || !ok {
		return s.current
	}
	return nil
}

// StatusAndText combines ExpectStatus and ExpectText.
func (s *Session) StatusAndText(res *Response, status int, text string) error {
	if err := s.ExpectStatus(res, status); err != nil {
		return err
	}
	return s.ExpectText(res, text)
}

// StatusAndJSON combines ExpectStatus and ExpectJSON.
func (s *Session) StatusAndJSON(res *Response, status int, want string) error {
	if err := s.ExpectStatus(res, status); err != nil {
		return err
	}
	return s.ExpectJSON(res, want)
}

// DecodeJSON decodes the body into v, failing the current check on error.
func (s *Session) DecodeJSON(res *Response, v any) error {
	dec := json.NewDecoder(bytes.NewReader(res.Body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return s.current
	}
	return nil
}

// JSONEqual reports whether two JSON documents hold the same value. Object key
// order is ignored. Integers compare exactly; other numbers compare as floats.
func JSONEqual(a, b []byte) (bool, error) {
	va, err := decodeJSON(a)
	if err != nil {
		return false, err
	}
	vb, err := decodeJSON(b)
	if err != nil {
		return false, err
	}
	return jsonValueEqual(va, vb), nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json failed: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after json value")
	}
	return v, nil
}

func jsonValueEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case json.Number:
		y, ok := b.(json.Number)
		return ok && numbersEqual(x, y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !jsonValueEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !jsonValueEqual(v, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numbersEqual(a, b json.Number) bool {
	ai, aerr := a.Int64()
	bi, berr := b.Int64()
	if aerr == nil && berr == nil {
		return ai == bi
	}
	if (aerr == nil) != (berr == nil) {
		// 1 and 1.0 are different values
		return false
	}
	af, err := a.Float64()
	if err != nil {
		return false
	}
	bf, err := b.Float64()
	if err != nil {
		return false
	}
	return af == bf
}
