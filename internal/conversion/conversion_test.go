package conversion

import (
	"testing"

	"github.com/strandfield/libscript/internal/symbols"
)

type fakeClasses struct {
	byType map[symbols.Type]*symbols.Class
}

func (f *fakeClasses) GetClass(t symbols.Type) *symbols.Class {
	return f.byType[t.WithoutConst().WithoutRef()]
}

func TestStandardConversionIdentityIsExactMatch(t *testing.T) {
	sc := ComputeStandard(symbols.Int, symbols.Int, &fakeClasses{})
	if sc.Rank() != ExactMatch {
		t.Fatalf("int->int should be ExactMatch, got %v", sc.Rank())
	}
}

func TestStandardConversionIntToDoubleIsPromotion(t *testing.T) {
	sc := ComputeStandard(symbols.Int, symbols.Double, &fakeClasses{})
	if sc.Rank() != Promotion {
		t.Fatalf("int->double should be Promotion, got %v", sc.Rank())
	}
}

func TestStandardConversionDoubleToIntIsConversion(t *testing.T) {
	sc := ComputeStandard(symbols.Double, symbols.Int, &fakeClasses{})
	if sc.Rank() != ConversionRank {
		t.Fatalf("double->int should be Conversion, got %v", sc.Rank())
	}
}

func TestStandardConversionVoidIsNotConvertible(t *testing.T) {
	sc := ComputeStandard(symbols.Void, symbols.Int, &fakeClasses{})
	if !sc.IsNotConvertible() {
		t.Fatalf("void->int should be NotConvertible")
	}
}

func TestStandardConversionDerivedToBaseReference(t *testing.T) {
	base := symbols.NewClass("Base", nil)
	derived := symbols.NewClass("Derived", base)

	baseType := symbols.NewType(100, symbols.ObjectFlag)
	derivedType := symbols.NewType(101, symbols.ObjectFlag)
	base.ID = baseType
	derived.ID = derivedType

	classes := &fakeClasses{byType: map[symbols.Type]*symbols.Class{
		baseType:    base,
		derivedType: derived,
	}}

	sc := ComputeStandard(derivedType, symbols.CRef(baseType), classes)
	if sc.IsNotConvertible() {
		t.Fatalf("derived->cref(base) should be convertible")
	}
	if sc.Category != CatDerivedToBase {
		t.Fatalf("expected CatDerivedToBase, got %v", sc.Category)
	}
	if sc.Rank() != ConversionRank {
		t.Fatalf("derived-to-base should rank Conversion, got %v", sc.Rank())
	}
}

func TestStandardConversionDerivedToBaseByValueRequiresCopyCtor(t *testing.T) {
	base := symbols.NewClass("Base", nil)
	derived := symbols.NewClass("Derived", base)
	baseType := symbols.NewType(200, symbols.ObjectFlag)
	derivedType := symbols.NewType(201, symbols.ObjectFlag)
	base.ID = baseType
	derived.ID = derivedType

	classes := &fakeClasses{byType: map[symbols.Type]*symbols.Class{
		baseType:    base,
		derivedType: derived,
	}}

	sc := ComputeStandard(derivedType, baseType, classes)
	if !sc.IsNotConvertible() {
		t.Fatalf("derived->base by value should not be convertible without a copy constructor")
	}

	proto := symbols.NewPrototype(symbols.Void, baseType.WithThis(), symbols.CRef(baseType))
	base.AddFunction(symbols.NewFunction(symbols.KindConstructor, symbols.NewStringName(symbols.ConstructorSymbolKind, "Base"), proto))

	sc2 := ComputeStandard(derivedType, baseType, classes)
	if sc2.IsNotConvertible() {
		t.Fatalf("derived->base by value should be convertible once Base has a copy constructor")
	}
}

func TestComputeConvertingConstructor(t *testing.T) {
	str := symbols.NewClass("String", nil)
	strType := symbols.NewType(300, symbols.ObjectFlag)
	str.ID = strType

	proto := symbols.NewPrototype(symbols.Void, strType.WithThis(), symbols.Int)
	ctor := symbols.NewFunction(symbols.KindConstructor, symbols.NewStringName(symbols.ConstructorSymbolKind, "String"), proto)
	str.AddFunction(ctor)

	classes := &fakeClasses{byType: map[symbols.Type]*symbols.Class{strType: str}}

	c := Compute(symbols.Int, strType, classes, ImplicitOnly)
	if c.IsNotConvertible() {
		t.Fatalf("int->String should be convertible via the converting constructor")
	}
	if c.UserDefinedConversion != ctor {
		t.Fatalf("expected the converting constructor to be selected")
	}
	if c.Rank() != UserDefinedConversion {
		t.Fatalf("expected UserDefinedConversion rank, got %v", c.Rank())
	}
}

func TestComputeExplicitConstructorExcludedByDefault(t *testing.T) {
	str := symbols.NewClass("String", nil)
	strType := symbols.NewType(301, symbols.ObjectFlag)
	str.ID = strType

	proto := symbols.NewPrototype(symbols.Void, strType.WithThis(), symbols.Int)
	ctor := symbols.NewFunction(symbols.KindConstructor, symbols.NewStringName(symbols.ConstructorSymbolKind, "String"), proto)
	ctor.Flags.Set(symbols.Explicit)
	str.AddFunction(ctor)

	classes := &fakeClasses{byType: map[symbols.Type]*symbols.Class{strType: str}}

	c := Compute(symbols.Int, strType, classes, ImplicitOnly)
	if !c.IsNotConvertible() {
		t.Fatalf("explicit constructor should not be used for implicit conversion")
	}

	c2 := Compute(symbols.Int, strType, classes, AllowExplicit)
	if c2.IsNotConvertible() {
		t.Fatalf("explicit constructor should be usable under AllowExplicit policy")
	}
}

func TestRankOrdering(t *testing.T) {
	if !(ExactMatch < Promotion && Promotion < ConversionRank && ConversionRank < UserDefinedConversion && UserDefinedConversion < NotConvertibleRank) {
		t.Fatalf("rank ordering invariant violated")
	}
}
