package jsonbridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Parse decodes text into a Value tree using gjson, the fast read-only JSON
// parser this module's dependency pack carries in place of encoding/json.
func Parse(text string) (*Value, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("jsonbridge: invalid JSON document")
	}
	return fromResult(gjson.Parse(text)), nil
}

func fromResult(r gjson.Result) *Value {
	switch r.Type {
	case gjson.Null:
		return NewNull()
	case gjson.False:
		return NewBoolean(false)
	case gjson.True:
		return NewBoolean(true)
	case gjson.String:
		return NewString(r.String())
	case gjson.Number:
		raw := r.Raw
		if !strings.ContainsAny(raw, ".eE") {
			return NewInt64(r.Int())
		}
		return NewNumber(r.Float())
	case gjson.JSON:
		if r.IsArray() {
			arr := NewArray()
			r.ForEach(func(_, elem gjson.Result) bool {
				arr.ArrayAppend(fromResult(elem))
				return true
			})
			return arr
		}
		obj := NewObject()
		r.ForEach(func(key, val gjson.Result) bool {
			obj.ObjectSet(key.String(), fromResult(val))
			return true
		})
		return obj
	default:
		return NewNull()
	}
}

// Encode renders v back into a JSON document using sjson, building the
// document bottom-up: each composite sets its children's already-encoded
// raw JSON into a path of an initially empty "{}"/"[]" document.
func Encode(v *Value) (string, error) {
	if v == nil {
		return "null", nil
	}
	switch v.Kind() {
	case KindNull, KindUndefined:
		return "null", nil
	case KindBoolean:
		if v.BoolValue() {
			return "true", nil
		}
		return "false", nil
	case KindInt64:
		return strconv.FormatInt(v.Int64Value(), 10), nil
	case KindNumber:
		return strconv.FormatFloat(v.NumberValue(), 'g', -1, 64), nil
	case KindString:
		return quoteJSONString(v.StringValue())
	case KindArray:
		doc := "[]"
		for i := 0; i < v.ArrayLen(); i++ {
			childRaw, err := Encode(v.ArrayGet(i))
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(i), childRaw)
			if err != nil {
				return "", fmt.Errorf("jsonbridge: encoding array element %d: %w", i, err)
			}
		}
		return doc, nil
	case KindObject:
		doc := "{}"
		for _, key := range v.ObjectKeys() {
			childRaw, err := Encode(v.ObjectGet(key))
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, escapeSjsonPath(key), childRaw)
			if err != nil {
				return "", fmt.Errorf("jsonbridge: encoding object key %q: %w", key, err)
			}
		}
		return doc, nil
	default:
		return "null", nil
	}
}

// quoteJSONString produces a correctly escaped JSON string literal for s by
// round-tripping through sjson (to escape) and gjson (to read the raw
// quoted form back out), rather than hand-rolling JSON string escaping.
func quoteJSONString(s string) (string, error) {
	doc, err := sjson.Set("{}", "v", s)
	if err != nil {
		return "", fmt.Errorf("jsonbridge: encoding string: %w", err)
	}
	return gjson.Get(doc, "v").Raw, nil
}

// escapeSjsonPath escapes sjson's path metacharacters (".", "*", "?") in an
// object key so a key containing them is treated as a literal segment
// rather than a path wildcard.
func escapeSjsonPath(key string) string {
	replacer := strings.NewReplacer(".", "\\.", "*", "\\*", "?", "\\?")
	return replacer.Replace(key)
}
