package value

import (
	"fmt"

	"github.com/strandfield/libscript/internal/conversion"
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/symbols"
)

// Invoker is the minimal capability Construct/Copy need from the
// interpreter: calling a constructor, cast, or copy-constructor Function
// with a prepared argument list and getting back the resulting Value. Kept
// as an interface here (rather than importing internal/interp directly)
// to avoid a value<->interp import cycle — interp already depends on
// value for its Value payloads, so value cannot depend back on interp.
type Invoker interface {
	Invoke(f *symbols.Function, args []*Value) (*Value, error)
}

// ClassResolver is the same minimal capability conversion.Compute needs;
// re-exposed here so callers only need to wire one registry-shaped value
// into this package's Construct/Copy/Convert entry points.
type ClassResolver = conversion.ClassResolver

// Construct implements Engine::construct(type, args) (spec §4.7):
//   - fundamentals with <=1 arg: default-construct (zero value) or apply a
//     fundamental conversion from the single argument;
//   - enums: require exactly one argument of the same enum type, copy it;
//   - objects: overload-resolve the class's constructors, build an
//     argument vector with a leading placeholder for the new object, and
//     invoke the selected constructor.
func Construct(t symbols.Type, args []*Value, classes ClassResolver, invoker Invoker) (*Value, error) {
	base := t.WithoutConst().WithoutRef()

	switch {
	case base.IsVoid():
		return Void, nil

	case base.IsFundamentalType():
		return constructFundamental(base, args, classes)

	case base.IsEnumType():
		return constructEnum(base, args, classes)

	case base.IsObjectType():
		return constructObject(base, args, classes, invoker)

	default:
		return nil, errkind.New(errkind.ConversionError, fmt.Sprintf("cannot construct value of type %v", base))
	}
}

func constructFundamental(t symbols.Type, args []*Value, classes ClassResolver) (*Value, error) {
	if len(args) == 0 {
		return zeroFundamental(t), nil
	}
	if len(args) > 1 {
		return nil, errkind.New(errkind.TooManyArgumentInInitialization, "fundamental construction takes at most one argument")
	}
	return Convert(args[0], t, classes)
}

func zeroFundamental(t symbols.Type) *Value {
	switch t.BaseType() {
	case symbols.BaseBoolean:
		return NewBool(false)
	case symbols.BaseChar:
		return NewChar(0)
	case symbols.BaseInt:
		return NewInt(0)
	case symbols.BaseFloat:
		return NewFloat(0)
	case symbols.BaseDouble:
		return NewDouble(0)
	default:
		return Void
	}
}

func constructEnum(t symbols.Type, args []*Value, classes ClassResolver) (*Value, error) {
	if len(args) != 1 {
		return nil, errkind.New(errkind.NoMatchingConstructor, "enum construction takes exactly one argument of the same enum type")
	}
	src := args[0]
	if src.Kind() != KindEnumerator || src.Type.BaseType() != t.BaseType() {
		return nil, errkind.New(errkind.NoMatchingConstructor, "enum construction argument must be of the same enum type")
	}
	e := src.Enumerator()
	return NewEnumerator(t, e.Enum, e.Value), nil
}

func constructObject(t symbols.Type, args []*Value, classes ClassResolver, invoker Invoker) (*Value, error) {
	class := classes.GetClass(t)
	if class == nil {
		return nil, errkind.New(errkind.NoMatchingConstructor, "unknown class type")
	}

	ctor, err := selectConstructor(class, args, classes)
	if err != nil {
		return nil, err
	}

	placeholder := NewObject(t, nil, class.CumulatedDataMemberCount())
	callArgs := append([]*Value{placeholder}, args...)
	return invoker.Invoke(ctor, callArgs)
}

// selectConstructor performs overload resolution over class's constructors
// against args, per spec §4.7's construct() error set.
func selectConstructor(class *symbols.Class, args []*Value, classes ClassResolver) (*symbols.Function, error) {
	var best *symbols.Function
	bestRank := conversion.NotConvertibleRank

	for _, ctor := range class.Constructors {
		if ctor.ParameterCount() != len(args) {
			continue
		}
		if ctor.IsDeleted() {
			continue
		}
		rank, ok := rankArguments(ctor, args, classes)
		if !ok {
			continue
		}
		if best == nil || rank < bestRank {
			best, bestRank = ctor, rank
		}
	}

	if best == nil {
		for _, ctor := range class.Constructors {
			if ctor.ParameterCount() == len(args) && ctor.IsDeleted() {
				return nil, errkind.New(errkind.ConstructorIsDeleted, "selected constructor is deleted")
			}
		}
		if len(args) > 0 && class.Constructors != nil {
			maxParams := 0
			for _, c := range class.Constructors {
				if c.ParameterCount() > maxParams {
					maxParams = c.ParameterCount()
				}
			}
			if len(args) > maxParams {
				return nil, errkind.New(errkind.TooManyArgumentInInitialization, "too many arguments in initialization")
			}
		}
		return nil, errkind.New(errkind.NoMatchingConstructor, "no matching constructor")
	}
	return best, nil
}

func rankArguments(f *symbols.Function, args []*Value, classes ClassResolver) (conversion.Rank, bool) {
	worst := conversion.ExactMatch
	offset := 0
	if f.IsMemberFunction() {
		offset = 1
	}
	for i, arg := range args {
		paramType := f.Prototype.At(i + offset)
		c := conversion.Compute(arg.Type, paramType, classes, conversion.ImplicitOnly)
		if c.IsNotConvertible() {
			return conversion.NotConvertibleRank, false
		}
		if c.Rank() > worst {
			worst = c.Rank()
		}
	}
	return worst, true
}

// Copy implements Engine's copy entry (spec §4.7 "Copy"): fundamentals and
// enums get a typed duplicate; objects invoke the class's copy-constructor.
func Copy(src *Value, classes ClassResolver, invoker Invoker) (*Value, error) {
	src = src.Deref()
	switch {
	case src.Kind() == KindFundamental:
		return copyFundamental(src), nil
	case src.Kind() == KindEnumerator:
		e := src.Enumerator()
		return NewEnumerator(src.Type, e.Enum, e.Value), nil
	case src.Kind() == KindObject:
		class := classes.GetClass(src.Type)
		if class == nil || class.CopyConstructor == nil || class.CopyConstructor.IsDeleted() {
			return nil, errkind.New(errkind.CopyError, "class has no usable copy constructor")
		}
		placeholder := NewObject(src.Type, nil, class.CumulatedDataMemberCount())
		return invoker.Invoke(class.CopyConstructor, []*Value{placeholder, src})
	case src.Kind() == KindFunction:
		return NewFunctionValue(src.Type, src.Function()), nil
	case src.Kind() == KindLambda:
		l := src.Lambda()
		captures := make([]*Value, len(l.Captures))
		copy(captures, l.Captures)
		return NewLambda(src.Type, l.ClosureType, captures), nil
	default:
		return src, nil
	}
}

func copyFundamental(v *Value) *Value {
	switch v.Type.BaseType() {
	case symbols.BaseBoolean:
		return NewBool(v.AsBool())
	case symbols.BaseChar:
		return NewChar(v.AsChar())
	case symbols.BaseInt:
		return NewInt(v.AsInt())
	case symbols.BaseFloat:
		return NewFloat(v.AsFloat())
	case symbols.BaseDouble:
		return NewDouble(v.AsDouble())
	default:
		return Void
	}
}

// Convert applies conversion.Compute(src.Type, dest, classes) to src, per
// spec §4.7 "Convert: Conversion::apply on the computed conversion".
func Convert(src *Value, dest symbols.Type, classes ClassResolver) (*Value, error) {
	c := conversion.Compute(src.Type, dest, classes, conversion.ImplicitOnly)
	if c.IsNotConvertible() {
		return nil, errkind.New(errkind.ConversionError, "value is not convertible to the requested type")
	}
	return applyFundamentalConversion(src, dest), nil
}

// applyFundamentalConversion handles the common case (no user-defined
// conversion function involved) of converting between fundamental types;
// object/enum conversions that do involve a user-defined function must go
// through Copy plus an explicit call via Invoker, handled by the engine
// facade which has access to both this package and internal/interp.
func applyFundamentalConversion(src *Value, dest symbols.Type) *Value {
	if src.Kind() != KindFundamental || !dest.IsFundamentalType() {
		return src
	}
	switch dest.BaseType() {
	case symbols.BaseBoolean:
		return NewBool(toFloat64(src) != 0)
	case symbols.BaseChar:
		return NewChar(rune(toFloat64(src)))
	case symbols.BaseInt:
		return NewInt(int64(toFloat64(src)))
	case symbols.BaseFloat:
		return NewFloat(float32(toFloat64(src)))
	case symbols.BaseDouble:
		return NewDouble(toFloat64(src))
	default:
		return src
	}
}

func toFloat64(v *Value) float64 {
	switch v.Type.BaseType() {
	case symbols.BaseBoolean:
		if v.AsBool() {
			return 1
		}
		return 0
	case symbols.BaseChar:
		return float64(v.AsChar())
	case symbols.BaseInt:
		return float64(v.AsInt())
	case symbols.BaseFloat:
		return float64(v.AsFloat())
	case symbols.BaseDouble:
		return v.AsDouble()
	default:
		return 0
	}
}
