package natives

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

func arg0s(args []any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expects exactly 1 argument, got %d", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("expected a string argument, got %T", args[0])
	}
	return s, nil
}

func registerStrings(r *Registry) {
	r.Register("UpperCase", CategoryString, "UpperCase(s): s converted to upper case.", func(args []any) (any, error) {
		s, err := arg0s(args)
		if err != nil {
			return nil, fmt.Errorf("UpperCase() %w", err)
		}
		return strings.ToUpper(s), nil
	})
	r.Register("LowerCase", CategoryString, "LowerCase(s): s converted to lower case.", func(args []any) (any, error) {
		s, err := arg0s(args)
		if err != nil {
			return nil, fmt.Errorf("LowerCase() %w", err)
		}
		return strings.ToLower(s), nil
	})
	r.Register("Trim", CategoryString, "Trim(s): s with leading/trailing whitespace removed.", func(args []any) (any, error) {
		s, err := arg0s(args)
		if err != nil {
			return nil, fmt.Errorf("Trim() %w", err)
		}
		return strings.TrimSpace(s), nil
	})
	r.Register("Length", CategoryString, "Length(s): the number of bytes in s.", func(args []any) (any, error) {
		s, err := arg0s(args)
		if err != nil {
			return nil, fmt.Errorf("Length() %w", err)
		}
		return int64(len(s)), nil
	})
	r.Register("Pos", CategoryString, "Pos(needle, haystack): 1-based index of the first occurrence of needle in haystack, or 0.", func(args []any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("Pos() expects exactly 2 arguments, got %d", len(args))
		}
		needle, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("Pos() expected a string argument, got %T", args[0])
		}
		haystack, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("Pos() expected a string argument, got %T", args[1])
		}
		return int64(strings.Index(haystack, needle) + 1), nil
	})
	r.Register("CompareLocaleStr", CategoryString, "CompareLocaleStr(s1, s2, locale): case-insensitive, locale-aware ordering of s1 against s2 (-1, 0 or 1).", func(args []any) (any, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("CompareLocaleStr() expects exactly 3 arguments, got %d", len(args))
		}
		s1, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("CompareLocaleStr() expected a string argument, got %T", args[0])
		}
		s2, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("CompareLocaleStr() expected a string argument, got %T", args[1])
		}
		locale, ok := args[2].(string)
		if !ok {
			return nil, fmt.Errorf("CompareLocaleStr() expected a string argument, got %T", args[2])
		}
		tag, err := language.Parse(locale)
		if err != nil {
			tag = language.English
		}
		col := collate.New(tag, collate.IgnoreCase)
		return int64(col.CompareString(s1, s2)), nil
	})
	r.Register("NormalizeString", CategoryString, "NormalizeString(s, form): s under the named Unicode normalization form (NFC, NFD, NFKC or NFKD).", func(args []any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("NormalizeString() expects exactly 2 arguments, got %d", len(args))
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("NormalizeString() expected a string argument, got %T", args[0])
		}
		form, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("NormalizeString() expected a string argument, got %T", args[1])
		}
		switch strings.ToUpper(form) {
		case "NFD":
			return norm.NFD.String(s), nil
		case "NFKC":
			return norm.NFKC.String(s), nil
		case "NFKD":
			return norm.NFKD.String(s), nil
		default:
			return norm.NFC.String(s), nil
		}
	})
}
