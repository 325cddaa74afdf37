package natives

import (
	"fmt"
	"math"
)

// arg0f/arg2f fetch and widen the first one or two arguments to float64,
// the common case for every function in this file.
func arg0f(args []any) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expects exactly 1 argument, got %d", len(args))
	}
	return toFloat64(args[0])
}

func arg2f(args []any) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expects exactly 2 arguments, got %d", len(args))
	}
	a, err := toFloat64(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := toFloat64(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case rune:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("expected a numeric argument, got %T", v)
	}
}

func registerMath(r *Registry) {
	unary := func(name, doc string, fn func(float64) float64) {
		r.Register(name, CategoryMath, doc, func(args []any) (any, error) {
			x, err := arg0f(args)
			if err != nil {
				return nil, fmt.Errorf("%s() %w", name, err)
			}
			return fn(x), nil
		})
	}

	unary("Abs", "Abs(x): absolute value of x.", math.Abs)
	unary("Sqrt", "Sqrt(x): square root of x.", math.Sqrt)
	unary("Sin", "Sin(x): sine of x radians.", math.Sin)
	unary("Cos", "Cos(x): cosine of x radians.", math.Cos)
	unary("Exp", "Exp(x): e raised to the power x.", math.Exp)
	unary("Ln", "Ln(x): natural logarithm of x.", math.Log)
	unary("Floor", "Floor(x): largest integer value not greater than x.", math.Floor)
	unary("Ceil", "Ceil(x): smallest integer value not less than x.", math.Ceil)
	unary("Round", "Round(x): x rounded to the nearest integer.", math.Round)

	r.Register("Pow", CategoryMath, "Pow(x, y): x raised to the power y.", func(args []any) (any, error) {
		x, y, err := arg2f(args)
		if err != nil {
			return nil, fmt.Errorf("Pow() %w", err)
		}
		return math.Pow(x, y), nil
	})
	r.Register("Max", CategoryMath, "Max(x, y): the greater of x and y.", func(args []any) (any, error) {
		x, y, err := arg2f(args)
		if err != nil {
			return nil, fmt.Errorf("Max() %w", err)
		}
		return math.Max(x, y), nil
	})
	r.Register("Min", CategoryMath, "Min(x, y): the lesser of x and y.", func(args []any) (any, error) {
		x, y, err := arg2f(args)
		if err != nil {
			return nil, fmt.Errorf("Min() %w", err)
		}
		return math.Min(x, y), nil
	})
}
