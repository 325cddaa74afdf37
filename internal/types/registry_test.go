package types

import (
	"testing"

	"github.com/strandfield/libscript/internal/symbols"
)

type recordingListener struct {
	createdSeq   []symbols.Type
	destroyedSeq []symbols.Type
}

func (l *recordingListener) Created(t symbols.Type)   { l.createdSeq = append(l.createdSeq, t) }
func (l *recordingListener) Destroyed(t symbols.Type) { l.destroyedSeq = append(l.destroyedSeq, t) }

func TestRegistryExistsLifecycle(t *testing.T) {
	r := NewRegistry()
	id := r.NextClassID()
	c := symbols.NewClass("Point", nil)
	r.RegisterClass(id, c)

	if !r.Exists(id) {
		t.Fatalf("expected class to exist after registration")
	}
	r.Destroy(id)
	if r.Exists(id) {
		t.Fatalf("expected class to not exist after destroy")
	}
}

func TestRegistryFundamentalsAlwaysExist(t *testing.T) {
	r := NewRegistry()
	for _, ft := range []symbols.Type{symbols.Void, symbols.Bool, symbols.Char, symbols.Int, symbols.Float, symbols.Double} {
		if !r.Exists(ft) {
			t.Fatalf("expected fundamental %v to always exist", ft)
		}
	}
}

func TestRegistryListenersCalledOnce(t *testing.T) {
	r := NewRegistry()
	l := &recordingListener{}
	r.AddListener(l)

	id := r.NextClassID()
	c := symbols.NewClass("Foo", nil)
	r.RegisterClass(id, c)
	r.Destroy(id)

	if len(l.createdSeq) != 1 || l.createdSeq[0] != id {
		t.Fatalf("expected exactly one Created(%v), got %v", id, l.createdSeq)
	}
	if len(l.destroyedSeq) != 1 || l.destroyedSeq[0] != id {
		t.Fatalf("expected exactly one Destroyed(%v), got %v", id, l.destroyedSeq)
	}
}

func TestReserveThenRegisterConsumesExactlyThoseIDs(t *testing.T) {
	r := NewRegistry()
	first := r.Reserve(slotClass, 3)

	ids := []symbols.Type{first, first + 1, first + 2}
	for i, id := range ids {
		c := symbols.NewClass("C", nil)
		r.RegisterClass(id, c)
		if !r.Exists(id) {
			t.Fatalf("id %d (index %d) should exist after registration", id, i)
		}
	}

	// No id outside the reserved range should have leaked into existence.
	if r.Exists(first + 3) {
		t.Fatalf("id beyond the reserved range should not exist")
	}
}

func TestTransactionRollbackDestroysInReverse(t *testing.T) {
	r := NewRegistry()
	l := &recordingListener{}
	r.AddListener(l)

	txn := Begin(r)
	defer txn.RollbackIfOpen()

	id1 := r.NextClassID()
	r.RegisterClass(id1, symbols.NewClass("A", nil))
	id2 := r.NextClassID()
	r.RegisterClass(id2, symbols.NewClass("B", nil))

	txn.Rollback()

	if r.Exists(id1) || r.Exists(id2) {
		t.Fatalf("rollback should have destroyed both types")
	}
	if len(l.destroyedSeq) != 2 || l.destroyedSeq[0] != id2 || l.destroyedSeq[1] != id1 {
		t.Fatalf("expected destruction in reverse order [id2,id1], got %v", l.destroyedSeq)
	}
	if r.HasActiveTransaction() {
		t.Fatalf("transaction should be cleared after rollback")
	}
}

func TestTransactionCommitKeepsTypes(t *testing.T) {
	r := NewRegistry()
	txn := Begin(r)
	id := r.NextClassID()
	r.RegisterClass(id, symbols.NewClass("A", nil))
	txn.Commit()

	if !r.Exists(id) {
		t.Fatalf("committed type should still exist")
	}
	if r.HasActiveTransaction() {
		t.Fatalf("transaction should be cleared after commit")
	}
}

func TestNestedTransactionPanics(t *testing.T) {
	r := NewRegistry()
	txn := Begin(r)
	defer txn.RollbackIfOpen()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nested transaction")
		}
	}()
	Begin(r)
}

func TestGetWrongKindReturnsNullNotPanic(t *testing.T) {
	r := NewRegistry()
	id := r.NextClassID()
	r.RegisterClass(id, symbols.NewClass("A", nil))

	if e := r.GetEnum(id); e != nil {
		t.Fatalf("expected nil enum for a class type id")
	}
}

func TestGetFunctionTypeIsIdempotent(t *testing.T) {
	r := NewRegistry()
	proto := symbols.NewPrototype(symbols.Int, symbols.Int, symbols.Int)

	var created int
	ft1 := r.GetFunctionType(proto, func(*symbols.FunctionType) { created++ })
	ft2 := r.GetFunctionType(proto, func(*symbols.FunctionType) { created++ })

	if ft1 != ft2 {
		t.Fatalf("expected the same function-type instance for an equal prototype")
	}
	if created != 1 {
		t.Fatalf("onCreate should fire exactly once, fired %d times", created)
	}
}
