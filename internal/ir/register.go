package ir

import (
	"fmt"
	"strconv"
)

// RegisterTable assigns SSA registers to tensor names.
//
// Arguments are numbered %arg0, %arg1, ... and values %0, %1, ...; the two
// counters are independent. A value with several results takes one index k
// shared by all results: each result is used as %k#i and the group is
// defined as %k:n.
//
// Each translation owns a fresh table. RegisterTable is not safe for
// concurrent use.
type RegisterTable struct {
	nextArg   int
	nextValue int
	regs      map[string]string
}

// NewRegisterTable creates an empty register table.
func NewRegisterTable() *RegisterTable {
	return &RegisterTable{regs: make(map[string]string)}
}

// ReserveArgument binds name to the next argument register.
func (t *RegisterTable) ReserveArgument(name string) (string, error) {
	if err := t.checkUnbound(name); err != nil {
		return "", err
	}
	reg := "%arg" + strconv.Itoa(t.nextArg)
	t.nextArg++
	t.regs[name] = reg
	return reg, nil
}

// AllocateValue binds names to the next value index and returns the
// definition-site register.
//
// One name yields "%k", used identically at every use site. Two or more
// names bind names[i] to "%k#i" and return "%k:n".
func (t *RegisterTable) AllocateValue(names []string) (string, error) {
	if len(names) == 0 {
		return "", NewMalformedGraph("value defines no results", nil)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return "", NewMalformedGraph("result listed twice", nil).ForTensor(name)
		}
		seen[name] = true
		if err := t.checkUnbound(name); err != nil {
			return "", err
		}
	}

	idx := strconv.Itoa(t.nextValue)
	t.nextValue++

	if len(names) == 1 {
		reg := "%" + idx
		t.regs[names[0]] = reg
		return reg, nil
	}
	for i, name := range names {
		t.regs[name] = fmt.Sprintf("%%%s#%d", idx, i)
	}
	return fmt.Sprintf("%%%s:%d", idx, len(names)), nil
}

// Lookup returns the register bound to name.
// An unbound name fails with ErrUnboundValue.
func (t *RegisterTable) Lookup(name string) (string, error) {
	reg, ok := t.regs[name]
	if !ok {
		return "", NewUnboundValue(name)
	}
	return reg, nil
}

// LookupAll resolves every name in order.
func (t *RegisterTable) LookupAll(names []string) ([]string, error) {
	regs := make([]string, len(names))
	for i, name := range names {
		reg, err := t.Lookup(name)
		if err != nil {
			return nil, err
		}
		regs[i] = reg
	}
	return regs, nil
}

// Bound reports whether name has a register.
func (t *RegisterTable) Bound(name string) bool {
	_, ok := t.regs[name]
	return ok
}

// checkUnbound enforces single assignment.
func (t *RegisterTable) checkUnbound(name string) error {
	if reg, ok := t.regs[name]; ok {
		return NewMalformedGraph(fmt.Sprintf("already bound to %s", reg), nil).ForTensor(name)
	}
	return nil
}
