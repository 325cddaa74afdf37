package value

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

type fakeInvoker struct {
	called *symbols.Function
}

func (f *fakeInvoker) Invoke(fn *symbols.Function, args []*Value) (*Value, error) {
	f.called = fn
	return args[0], nil
}

func TestRefCountLifecycle(t *testing.T) {
	rc := NewRefCountManager()
	v := NewInt(42)
	rc.IncrementRef(v)
	if v.RefCount() != 2 {
		t.Fatalf("expected refcount 2 after one increment, got %d", v.RefCount())
	}
	if err := rc.DecrementRef(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.RefCount() != 1 {
		t.Fatalf("expected refcount 1, got %d", v.RefCount())
	}
}

func TestDestructorCallbackFiresAtZero(t *testing.T) {
	rc := NewRefCountManager()
	var destroyed *Value
	rc.SetDestructorCallback(func(v *Value) error {
		destroyed = v
		return nil
	})

	obj := NewObject(symbols.NewType(42, symbols.ObjectFlag), nil, 0)
	if err := rc.DecrementRef(obj); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if destroyed != obj {
		t.Fatalf("expected destructor callback to fire for obj")
	}
}

func TestVoidSingletonNeverDestroyed(t *testing.T) {
	rc := NewRefCountManager()
	if err := rc.DecrementRef(Void); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Void.RefCount() != 1 {
		t.Fatalf("Void's refcount should never change, got %d", Void.RefCount())
	}
}

func TestLocalsDropDestroysRefcountOneValues(t *testing.T) {
	rc := NewRefCountManager()
	locals := NewLocals(rc)

	v := locals.Own(NewInt(1))
	if err := locals.Drop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.RefCount() != 0 {
		t.Fatalf("expected owned temporary to be destroyed, refcount=%d", v.RefCount())
	}
}

func TestLocalsDropSparesSharedValues(t *testing.T) {
	rc := NewRefCountManager()
	locals := NewLocals(rc)

	v := NewInt(1)
	rc.IncrementRef(v) // simulate another owner
	locals.Own(v)

	if err := locals.Drop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.RefCount() != 1 {
		t.Fatalf("expected shared value to survive Drop with refcount 1, got %d", v.RefCount())
	}
}

func TestConstructFundamentalDefault(t *testing.T) {
	v, err := Construct(symbols.Int, nil, &fakeClasses{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AsInt() != 0 {
		t.Fatalf("expected zero-initialized int, got %d", v.AsInt())
	}
}

func TestConstructFundamentalFromConversion(t *testing.T) {
	v, err := Construct(symbols.Double, []*Value{NewInt(7)}, &fakeClasses{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AsDouble() != 7 {
		t.Fatalf("expected 7.0, got %v", v.AsDouble())
	}
}

func TestConstructObjectSelectsMatchingConstructor(t *testing.T) {
	class := symbols.NewClass("Point", nil)
	classType := symbols.NewType(500, symbols.ObjectFlag)
	class.ID = classType

	proto := symbols.NewPrototype(symbols.Void, classType.WithThis(), symbols.Int)
	ctor := symbols.NewFunction(symbols.KindConstructor, symbols.NewStringName(symbols.ConstructorSymbolKind, "Point"), proto)
	class.AddFunction(ctor)

	classes := &fakeClasses{byType: map[symbols.Type]*symbols.Class{classType: class}}
	inv := &fakeInvoker{}

	_, err := Construct(classType, []*Value{NewInt(1)}, classes, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.called != ctor {
		t.Fatalf("expected the one-int constructor to be selected")
	}
}

func TestConstructObjectNoMatchingConstructor(t *testing.T) {
	class := symbols.NewClass("Point", nil)
	classType := symbols.NewType(501, symbols.ObjectFlag)
	class.ID = classType
	classes := &fakeClasses{byType: map[symbols.Type]*symbols.Class{classType: class}}

	_, err := Construct(classType, []*Value{NewInt(1)}, classes, &fakeInvoker{})
	if err == nil {
		t.Fatalf("expected an error for a class with no constructors")
	}
}

func TestCopyFundamental(t *testing.T) {
	v, err := Copy(NewInt(9), &fakeClasses{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AsInt() != 9 {
		t.Fatalf("expected copy to preserve value, got %d", v.AsInt())
	}
}
