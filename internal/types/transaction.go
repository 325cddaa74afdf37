package types

import "github.com/strandfield/libscript/internal/symbols"

// Transaction collects every type created while it is open and either
// commits (clearing the list) or rolls back (destroying each collected
// type in reverse) — spec §4.1 "Transactions". Nesting is not supported:
// Begin panics if a transaction is already active, matching
// HasActiveTransaction's stated purpose of forbidding concurrent/nested
// transactions (spec §5).
type Transaction struct {
	registry *Registry
	created  []symbols.Type
	done     bool
}

// Begin opens a transaction on r. Callers should `defer txn.RollbackIfOpen()`
// immediately so that a panic/error return during compilation rolls back
// automatically (spec §4.1 "Rollback is invoked automatically if the
// transaction object is dropped while an exception is propagating" — the
// Go analogue of "exception propagating" is "panic unwinding" or, for
// ordinary error returns, an explicit RollbackIfOpen in a defer guarded by
// a named error result).
func Begin(r *Registry) *Transaction {
	if r.activeTransaction != nil {
		panic("types: nested transactions are not supported")
	}
	t := &Transaction{registry: r}
	r.activeTransaction = t
	return t
}

func (t *Transaction) record(typ symbols.Type) {
	t.created = append(t.created, typ)
}

// Commit clears the collected list; the types created during the
// transaction remain registered.
func (t *Transaction) Commit() {
	if t.done {
		return
	}
	t.created = nil
	t.done = true
	t.registry.activeTransaction = nil
}

// Rollback destroys each collected type in reverse order of creation.
func (t *Transaction) Rollback() {
	if t.done {
		return
	}
	for i := len(t.created) - 1; i >= 0; i-- {
		t.registry.Destroy(t.created[i])
	}
	t.created = nil
	t.done = true
	t.registry.activeTransaction = nil
}

// RollbackIfOpen rolls back unless Commit/Rollback already ran. Intended
// for `defer txn.RollbackIfOpen()` right after Begin.
func (t *Transaction) RollbackIfOpen() {
	if !t.done {
		t.Rollback()
	}
}
