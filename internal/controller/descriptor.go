// Package controller implements the generic master-entity controller: one
// parameterized orchestrator replacing the per-entity page logic repeated
// across every master-data screen. It composes five roles: permission gate,
// list provider, mutation set, duplicate-code resolver and confirmation
// sequencer.
package controller

import (
	"encoding/json"
	"strconv"
)

// EntityDescriptor binds the controller to one entity type. Field names are
// configurable because older backends expose per-entity keys (accGroupId,
// accGroupCode) instead of the generic id/code/name.
type EntityDescriptor struct {
	Name          string
	ModuleID      int16
	TransactionID int16
	IDField       string
	CodeField     string
	NameField     string
}

// NewDescriptor builds a descriptor with the generic field names
func NewDescriptor(name string, moduleID, transactionID int16) EntityDescriptor {
	return EntityDescriptor{
		Name:          name,
		ModuleID:      moduleID,
		TransactionID: transactionID,
		IDField:       "id",
		CodeField:     "code",
		NameField:     "name",
	}
}

// Record is an entity payload as it travels on the wire. Keeping it a map
// lets one controller serve any field naming scheme the descriptor binds.
type Record map[string]interface{}

// ID extracts the numeric id named by the descriptor; zero when absent
func (d EntityDescriptor) ID(r Record) int64 {
	return toInt64(r[d.IDField])
}

// Code extracts the business code named by the descriptor
func (d EntityDescriptor) Code(r Record) string {
	s, _ := r[d.CodeField].(string)
	return s
}

// DisplayName extracts the display label named by the descriptor
func (d EntityDescriptor) DisplayName(r Record) string {
	s, _ := r[d.NameField].(string)
	return s
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}
