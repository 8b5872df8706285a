// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

// StateChange is the latest value of a state key written by a call
type StateChange struct {
	key   []byte
	value []byte
}

func NewStateChange() *StateChange {
	return new(StateChange)
}

func (sc *StateChange) Key() []byte   { return sc.key }
func (sc *StateChange) Value() []byte { return sc.value }

func (sc *StateChange) SetKey(val []byte) *StateChange {
	sc.key = val
	return sc
}

func (sc *StateChange) SetValue(val []byte) *StateChange {
	sc.value = val
	return sc
}

// Deleted reports whether the change removes the key
func (sc *StateChange) Deleted() bool {
	return len(sc.value) == 0
}
