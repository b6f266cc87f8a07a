// Package json transcribes JSON records into encoded expressions and
// inserts them through a Space's write cursor (spec §6.3). Objects and
// arrays become a cons-style chain of binary compounds — (key value-rest)
// for an object field, (index value-rest) for an array element — so that
// a field/element can be queried positionally without flattening the
// whole record; this mirrors the recursive depth-bounded descent of the
// teacher's jsonrl/state.go object/array handling (beginRecord/beginList,
// MaxObjectDepth), adapted from ion's columnar target to MORK's own
// (key value-rest) chain shape.
//
// No example repo imports a third-party JSON tokenizer (jsonrl's own
// lexer is hand-rolled/ragel-generated, not an importable library), so
// tokenization here uses encoding/json's stdlib Decoder in UseNumber
// mode, which is the only way to recover a JSON number's original
// mantissa/exponent text rather than a lossily-reparsed float64. This
// stdlib use is recorded in DESIGN.md.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/space"
	"github.com/HyperCogWizard/mork-go/symbol"
)

// MaxObjectDepth bounds recursion into nested objects/arrays, matching the
// teacher's own jsonrl.MaxObjectDepth guard against pathological input.
const MaxObjectDepth = 64

// nilNode terminates a cons chain: an empty (arity-0) compound, printed
// as "()" by the sexpr surface.
func nilNode() []byte {
	z := expr.NewZipper()
	z.WriteArity(0)
	return z.Bytes()
}

func pairNode(a, b []byte) []byte {
	z := expr.NewZipper()
	z.WriteArity(2)
	z.AppendRaw(a)
	z.AppendRaw(b)
	return z.Bytes()
}

func symbolNode(interner symbol.Interner, text string) []byte {
	z := expr.NewZipper()
	z.WriteSymbol(interner.InternBytes([]byte(text)))
	return z.Bytes()
}

// FormatNumber normalizes a JSON number's literal text to spec §6.3's
// symbol form: a bare decimal integer when the text has no fractional or
// exponent part, otherwise "mantissa e exponent" with a negative mantissa
// prefixed by '-'.
func FormatNumber(n json.Number) string {
	text := string(n)
	if !strings.ContainsAny(text, ".eE") {
		return text
	}
	f, err := n.Float64()
	if err != nil {
		return text
	}
	formatted := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, ok := strings.Cut(formatted, "e")
	if !ok {
		return text
	}
	exp = strings.TrimPrefix(exp, "+")
	return mantissa + " e " + exp
}

func encodeScalar(interner symbol.Interner, v interface{}) []byte {
	switch t := v.(type) {
	case nil:
		return symbolNode(interner, "null")
	case bool:
		if t {
			return symbolNode(interner, "true")
		}
		return symbolNode(interner, "false")
	case json.Number:
		return symbolNode(interner, FormatNumber(t))
	case string:
		return symbolNode(interner, t)
	default:
		return symbolNode(interner, fmt.Sprint(t))
	}
}

func encodeValue(interner symbol.Interner, v interface{}, depth int) ([]byte, error) {
	if depth >= MaxObjectDepth {
		return nil, fmt.Errorf("json: object depth exceeds %d", MaxObjectDepth)
	}
	switch t := v.(type) {
	case map[string]interface{}:
		return encodeObject(interner, t, depth+1)
	case []interface{}:
		return encodeArray(interner, t, depth+1)
	default:
		return encodeScalar(interner, v), nil
	}
}

func encodeObject(interner symbol.Interner, obj map[string]interface{}, depth int) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	// map iteration order is random; sort for deterministic encoding so
	// repeated transcription of the same object yields identical bytes.
	sortStrings(keys)

	tail := nilNode()
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		val, err := encodeValue(interner, obj[k], depth)
		if err != nil {
			return nil, err
		}
		tail = pairNode(symbolNode(interner, k), pairNode(val, tail))
	}
	return tail, nil
}

func encodeArray(interner symbol.Interner, arr []interface{}, depth int) ([]byte, error) {
	tail := nilNode()
	for i := len(arr) - 1; i >= 0; i-- {
		val, err := encodeValue(interner, arr[i], depth)
		if err != nil {
			return nil, err
		}
		idx := symbolNode(interner, strconv.Itoa(i))
		tail = pairNode(idx, pairNode(val, tail))
	}
	return tail, nil
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Convert reads zero or more JSON values from r (records, optionally
// wrapped in a top-level array that gets flattened one record per
// element, as the teacher's jsonrl.Convert does) and inserts each as an
// encoded expression into s. Returns the number of records inserted.
func Convert(r io.Reader, s *space.Space) (int, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	n := 0
	for dec.More() {
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return n, err
		}
		if arr, ok := v.([]interface{}); ok {
			for _, item := range arr {
				if err := insertRecord(s, item); err != nil {
					return n, err
				}
				n++
			}
			continue
		}
		if err := insertRecord(s, v); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func insertRecord(s *space.Space, v interface{}) error {
	buf, err := encodeValue(s.Interner(), v, 0)
	if err != nil {
		return err
	}
	_, err = s.Insert(expr.New(buf))
	return err
}
