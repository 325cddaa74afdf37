// Package conversion implements the conversion engine (§4.2 of
// SPEC_FULL.md, C2): computing and ranking standard and user-defined
// conversion sequences between two types, and applying them to values.
//
// Grounded directly on _examples/original_source/src/conversions.cpp: the
// 5x5 fundamental-conversion table, the rank table, and the
// StandardConversion/Conversion two-stage algorithm are re-expressed here
// in Go with named constants instead of the original's flat integer
// tables, trading the original's single packed int encoding for a small
// struct — clearer in a language without C++'s bitfield idiom, while
// preserving the exact same rank outcomes the original computes.
package conversion

import "github.com/strandfield/libscript/internal/symbols"

// Rank orders how good a conversion is. Lower is better, matching the
// ordering used by spec §4.2 ("ExactMatch, Promotion, Conversion,
// UserDefinedConversion, NotConvertible").
type Rank int

const (
	ExactMatch Rank = iota
	Promotion
	ConversionRank
	UserDefinedConversion
	NotConvertibleRank
)

// StdCategory tags which kind of standard conversion a StandardConversion
// represents.
type StdCategory int

const (
	CatCopy StdCategory = iota
	CatReferenceBinding
	CatFundamentalToFundamental
	CatDerivedToBase
	CatEnumToInt
	CatNotConvertible
)

// StandardConversion encodes one builtin conversion: its category, a
// derived-to-base depth when applicable, and two independent flags
// (qualification adjustment, reference conversion) — spec §4.2.
type StandardConversion struct {
	Category StdCategory
	Depth    int // derived-to-base inheritance depth

	QualificationAdjustment bool
	ReferenceConversion     bool
}

// IdentityReference is the identity reference-binding conversion applied
// when no conversion is needed at all (default zero value behaves the
// same but this name documents intent at call sites).
var IdentityReference = StandardConversion{Category: CatReferenceBinding, ReferenceConversion: true}

// NotConvertibleStd is the canonical "not convertible" sentinel.
var NotConvertibleStd = StandardConversion{Category: CatNotConvertible}

// IsNotConvertible reports whether sc represents an impossible conversion.
func (sc StandardConversion) IsNotConvertible() bool { return sc.Category == CatNotConvertible }

// Rank computes sc's rank per spec §4.2's classification:
// ExactMatch (copy, identity reference bind, qualification only),
// Promotion (widening numeric), Conversion (narrowing numeric, enum→int,
// derived-to-base), NotConvertible otherwise.
func (sc StandardConversion) Rank() Rank {
	switch sc.Category {
	case CatNotConvertible:
		return NotConvertibleRank
	case CatCopy:
		return ExactMatch
	case CatReferenceBinding:
		return ExactMatch
	case CatDerivedToBase:
		return ConversionRank
	case CatEnumToInt:
		return ConversionRank
	case CatFundamentalToFundamental:
		return fundamentalRank[sc.fundamentalIndex()]
	}
	return NotConvertibleRank
}

// fundamentalKind indexes the 5x5 table: bool, char, int, float, double.
type fundamentalKind int

const (
	fkBool fundamentalKind = iota
	fkChar
	fkInt
	fkFloat
	fkDouble
	fkCount
)

func baseToFundamentalKind(t symbols.Type) (fundamentalKind, bool) {
	switch t.BaseType() {
	case symbols.BaseBoolean:
		return fkBool, true
	case symbols.BaseChar:
		return fkChar, true
	case symbols.BaseInt:
		return fkInt, true
	case symbols.BaseFloat:
		return fkFloat, true
	case symbols.BaseDouble:
		return fkDouble, true
	default:
		return 0, false
	}
}

// fundamentalRank is indexed by src*5+dest, ordered bool,char,int,float,double
// in both dimensions, matching conversions.cpp's stdconv_table layout.
var fundamentalRank = [fkCount * fkCount]Rank{
	// bool ->
	ExactMatch, ConversionRank, Promotion, ConversionRank, ConversionRank,
	// char ->
	ConversionRank, ExactMatch, Promotion, Promotion, Promotion,
	// int ->
	ConversionRank, ConversionRank, ExactMatch, Promotion, Promotion,
	// float ->
	ConversionRank, ConversionRank, ConversionRank, ExactMatch, Promotion,
	// double ->
	ConversionRank, ConversionRank, ConversionRank, ConversionRank, ExactMatch,
}

// the table index src*5+dest of a fundamental-to-fundamental conversion is
// stored in Depth so StandardConversion stays a single flat struct without
// extra fields (Depth is otherwise unused for this category).
func (sc StandardConversion) fundamentalIndex() int {
	return sc.Depth
}

func fundamentalConversion(src, dest fundamentalKind) StandardConversion {
	idx := int(src)*int(fkCount) + int(dest)
	return StandardConversion{Category: CatFundamentalToFundamental, Depth: idx}
}

// checkNotConvertible mirrors conversions.cpp's checkNotConvertible guard:
// void on either side, or binding a reference to a different non-class base
// type, or binding a non-const reference to a const source, are all
// impossible. A reference to a different class is left to the
// derived-to-base check of ComputeStandard.
func checkNotConvertible(src, dest symbols.Type) bool {
	if src.IsVoid() || dest.IsVoid() {
		return true
	}
	if dest.IsReference() && src.BaseType() != dest.BaseType() && !(src.IsObjectType() && dest.IsObjectType()) {
		return true
	}
	if dest.IsReference() && src.IsConst() && !dest.IsConst() {
		return true
	}
	return false
}

// ClassResolver is the minimal capability StandardConversion.Compute needs
// from the type registry: resolving a Type to its Class metadata for
// derived-to-base ranking. Accepting an interface instead of *types.Registry
// keeps this package usable with any registry-shaped type and avoids
// pulling in internal/types just for this one query.
type ClassResolver interface {
	GetClass(t symbols.Type) *symbols.Class
}

// ComputeStandard computes the standard conversion from src to dest, per
// spec §4.2 StandardConversion::compute.
func ComputeStandard(src, dest symbols.Type, classes ClassResolver) StandardConversion {
	if checkNotConvertible(src, dest) {
		return NotConvertibleStd
	}

	if src.IsFundamentalType() && dest.IsFundamentalType() {
		sk, sok := baseToFundamentalKind(src)
		dk, dok := baseToFundamentalKind(dest)
		if !sok || !dok {
			return NotConvertibleStd
		}
		sc := fundamentalConversion(sk, dk)
		applyCommonFlags(&sc, src, dest)
		return sc
	}

	if src.IsObjectType() && dest.IsObjectType() {
		srcClass := classes.GetClass(src)
		destClass := classes.GetClass(dest)
		if srcClass == nil || destClass == nil {
			return NotConvertibleStd
		}
		depth := srcClass.InheritanceDepth(destClass)
		if depth < 0 {
			return NotConvertibleStd
		}
		var sc StandardConversion
		if depth == 0 {
			if dest.IsReference() {
				sc = StandardConversion{Category: CatReferenceBinding, ReferenceConversion: true}
			} else {
				sc = StandardConversion{Category: CatCopy}
			}
		} else {
			// derived-to-base: reference-only unless the class is
			// copy-constructible (spec §4.2).
			if dest.IsReference() {
				sc = StandardConversion{Category: CatDerivedToBase, Depth: depth, ReferenceConversion: true}
			} else if destClass.CopyConstructor != nil {
				sc = StandardConversion{Category: CatDerivedToBase, Depth: depth}
			} else {
				return NotConvertibleStd
			}
		}
		applyCommonFlags(&sc, src, dest)
		return sc
	}

	// same base type (enum/closure/function-type), reference dest -> identity bind;
	// otherwise copy for a value dest of the same entity kind.
	if src.BaseType() == dest.BaseType() && src.Category() == dest.Category() {
		var sc StandardConversion
		if dest.IsReference() {
			sc = StandardConversion{Category: CatReferenceBinding, ReferenceConversion: true}
		} else {
			sc = StandardConversion{Category: CatCopy}
		}
		applyCommonFlags(&sc, src, dest)
		return sc
	}

	if src.IsEnumType() && dest.IsFundamentalType() && dest.BaseType() == symbols.BaseInt && !dest.IsReference() {
		sc := StandardConversion{Category: CatEnumToInt}
		applyCommonFlags(&sc, src, dest)
		return sc
	}

	return NotConvertibleStd
}

func applyCommonFlags(sc *StandardConversion, src, dest symbols.Type) {
	if dest.IsReference() {
		sc.ReferenceConversion = true
	}
	if dest.IsConst() && !src.IsConst() {
		sc.QualificationAdjustment = true
	}
}

// Less implements the ranking order from spec §4.2: "rank-first, then
// derived-to-base depth (shallower is better), then reference conversions
// are preferred over non-reference, then no-qualification-adjustment
// wins."
func (sc StandardConversion) Less(other StandardConversion) bool {
	sr, or := sc.Rank(), other.Rank()
	if sr != or {
		return sr < or
	}
	if sc.Category == CatDerivedToBase && other.Category == CatDerivedToBase && sc.Depth != other.Depth {
		return sc.Depth < other.Depth
	}
	if sc.ReferenceConversion != other.ReferenceConversion {
		return sc.ReferenceConversion
	}
	if sc.QualificationAdjustment != other.QualificationAdjustment {
		return !sc.QualificationAdjustment
	}
	return false
}
