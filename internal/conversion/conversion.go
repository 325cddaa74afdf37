package conversion

import "github.com/strandfield/libscript/internal/symbols"

// Conversion is a full conversion sequence: an optional first standard
// conversion, an optional user-defined conversion function (a converting
// constructor or a cast operator), and an optional second standard
// conversion — spec §4.2 "std1 . user? . std2".
type Conversion struct {
	FirstStandardConversion  StandardConversion
	UserDefinedConversion    *symbols.Function
	SecondStandardConversion StandardConversion
}

// NotConvertible is the canonical impossible Conversion.
var NotConvertible = Conversion{FirstStandardConversion: NotConvertibleStd}

// IsNotConvertible reports whether c represents an impossible conversion.
func (c Conversion) IsNotConvertible() bool {
	return c.UserDefinedConversion == nil && c.FirstStandardConversion.IsNotConvertible()
}

// Rank classifies the whole sequence: a pure standard conversion ranks by
// its StandardConversion.Rank(); any sequence that goes through a
// user-defined conversion function ranks UserDefinedConversion regardless
// of how good std1/std2 individually are (spec §4.2).
func (c Conversion) Rank() Rank {
	if c.UserDefinedConversion != nil {
		return UserDefinedConversion
	}
	return c.FirstStandardConversion.Rank()
}

// ClassFunctionsResolver adds no methods to ClassResolver: the constructor
// and cast candidates of a user-defined conversion are read from the
// Constructors and Casts of the *symbols.Class that GetClass returns.
type ClassFunctionsResolver interface {
	ClassResolver
}

// Policy controls whether Compute considers explicit constructors/casts,
// matching spec §4.2's "policy: implicit-only vs. allow-explicit
// (direct-initialization)" distinction.
type Policy int

const (
	ImplicitOnly Policy = iota
	AllowExplicit
)

// Compute computes the best conversion from src to dest using policy,
// following spec §4.2's three-stage search: (1) a pure standard
// conversion; (2) src converted via a converting constructor of dest's
// class, optionally followed by a second standard conversion; (3) src
// converted via a cast (conversion) operator of src's class to something
// convertible to dest. A convertible standard conversion is returned at
// once; otherwise a constructor candidate is kept over an equally ranked
// cast candidate, and two equally ranked candidates within one stage make
// the conversion ambiguous (NotConvertible).
func Compute(src, dest symbols.Type, classes ClassResolver, policy Policy) Conversion {
	best := Conversion{FirstStandardConversion: ComputeStandard(src, dest, classes)}
	if !best.IsNotConvertible() {
		return best
	}

	if destClass := classes.GetClass(dest); destClass != nil {
		ctorBest, ambiguous := bestConvertingCandidate(destClass.Constructors, func(ctor *symbols.Function) (Conversion, StandardConversion, bool) {
			if ctor.IsDeleted() || ctor.IsExplicit() && policy != AllowExplicit || ctor.ParameterCount() != 1 {
				return Conversion{}, StandardConversion{}, false
			}
			paramType := ctor.Prototype.At(ctor.Prototype.Count() - 1)
			std1 := ComputeStandard(src, paramType.WithoutRef().WithoutConst(), classes)
			if std1.IsNotConvertible() {
				return Conversion{}, StandardConversion{}, false
			}
			return Conversion{
				FirstStandardConversion:  std1,
				UserDefinedConversion:    ctor,
				SecondStandardConversion: StandardConversion{Category: CatCopy},
			}, std1, true
		})
		if ambiguous {
			return NotConvertible
		}
		if ctorBest != nil && (ctorBest.Rank() < best.Rank() || best.IsNotConvertible()) {
			best = *ctorBest
		}
	}

	if srcClass := classes.GetClass(src); srcClass != nil {
		castBest, ambiguous := bestConvertingCandidate(srcClass.Casts, func(cast symbols.Cast) (Conversion, StandardConversion, bool) {
			if cast.Function.IsDeleted() || cast.Function.IsExplicit() && policy != AllowExplicit {
				return Conversion{}, StandardConversion{}, false
			}
			std2 := ComputeStandard(cast.Dest, dest, classes)
			if std2.IsNotConvertible() {
				return Conversion{}, StandardConversion{}, false
			}
			return Conversion{
				FirstStandardConversion:  StandardConversion{Category: CatCopy},
				UserDefinedConversion:    cast.Function,
				SecondStandardConversion: std2,
			}, std2, true
		})
		if ambiguous {
			return NotConvertible
		}
		if castBest != nil && (castBest.Rank() < best.Rank() || best.IsNotConvertible()) {
			best = *castBest
		}
	}

	return best
}

// bestConvertingCandidate picks the best user-defined-conversion candidate
// out of candidates, ranking by each candidate's own StandardConversion
// half (std1 for converting constructors, std2 for cast operators) via
// StandardConversion.Less rather than Conversion.Rank — every user-defined
// candidate ranks UserDefinedConversion regardless of how good its
// standard half is, so Rank alone can never tell two of them apart (spec
// §4.2). consider returns ok=false to skip a candidate that doesn't apply.
// Two candidates tying on Less makes the choice ambiguous.
func bestConvertingCandidate[T any](candidates []T, consider func(T) (Conversion, StandardConversion, bool)) (*Conversion, bool) {
	var best *Conversion
	var bestStd StandardConversion
	ambiguous := false
	for _, c := range candidates {
		cand, std, ok := consider(c)
		if !ok {
			continue
		}
		switch {
		case best == nil:
			cand := cand
			best = &cand
			bestStd = std
			ambiguous = false
		case std.Less(bestStd):
			cand := cand
			best = &cand
			bestStd = std
			ambiguous = false
		case bestStd.Less(std):
			// existing best is strictly better; keep it.
		default:
			ambiguous = true
		}
	}
	return best, ambiguous
}

// Less orders two Conversion sequences by overall quality, per spec §4.2's
// overload-resolution tie-breaking: rank first, then (for two standard-only
// sequences) StandardConversion.Less.
func (c Conversion) Less(other Conversion) bool {
	cr, or := c.Rank(), other.Rank()
	if cr != or {
		return cr < or
	}
	if cr == NotConvertibleRank {
		return false
	}
	if c.UserDefinedConversion == nil && other.UserDefinedConversion == nil {
		return c.FirstStandardConversion.Less(other.FirstStandardConversion)
	}
	return false
}
