package natives

import (
	"fmt"
	"strconv"
)

func registerConversion(r *Registry) {
	r.Register("IntToStr", CategoryConversion, "IntToStr(i): i formatted as a decimal string.", func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("IntToStr() expects exactly 1 argument, got %d", len(args))
		}
		i, ok := args[0].(int64)
		if !ok {
			return nil, fmt.Errorf("IntToStr() expected an integer argument, got %T", args[0])
		}
		return strconv.FormatInt(i, 10), nil
	})

	r.Register("StrToInt", CategoryConversion, "StrToInt(s): s parsed as a decimal integer.", func(args []any) (any, error) {
		s, err := arg0s(args)
		if err != nil {
			return nil, fmt.Errorf("StrToInt() %w", err)
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("StrToInt(): %q is not a valid integer", s)
		}
		return i, nil
	})

	r.Register("FloatToStr", CategoryConversion, "FloatToStr(x): x formatted as a decimal string.", func(args []any) (any, error) {
		x, err := arg0f(args)
		if err != nil {
			return nil, fmt.Errorf("FloatToStr() %w", err)
		}
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	})

	r.Register("StrToFloat", CategoryConversion, "StrToFloat(s): s parsed as a floating-point number.", func(args []any) (any, error) {
		s, err := arg0s(args)
		if err != nil {
			return nil, fmt.Errorf("StrToFloat() %w", err)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("StrToFloat(): %q is not a valid number", s)
		}
		return f, nil
	})

	r.Register("BoolToStr", CategoryConversion, "BoolToStr(b): \"True\" or \"False\".", func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("BoolToStr() expects exactly 1 argument, got %d", len(args))
		}
		b, ok := args[0].(bool)
		if !ok {
			return nil, fmt.Errorf("BoolToStr() expected a boolean argument, got %T", args[0])
		}
		if b {
			return "True", nil
		}
		return "False", nil
	})
}
