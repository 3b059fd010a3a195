package services

import (
	"fmt"
	"sort"
)

// ApartmentIndex resolves export apartment keys (externalOwnerId#externalApartmentId)
// to internal apartment ids. It only holds apartments of the current roster.
type ApartmentIndex map[string]string

// Resolve returns the internal id of the apartment with the given export identity.
func (idx ApartmentIndex) Resolve(key string) (string, bool) {
	id, ok := idx[key]
	return id, ok
}

// IDs returns the internal apartment ids in ascending order.
func (idx ApartmentIndex) IDs() []string {
	ids := make([]string, 0, len(idx))
	for _, id := range idx {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// hoaErrors collects non-fatal errors of one HOA import.
type hoaErrors struct {
	msgs []string
}

func (e *hoaErrors) add(format string, args ...any) {
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *hoaErrors) list() []string {
	if e.msgs == nil {
		return []string{}
	}
	return e.msgs
}

// changeSet is the outcome of diffing incoming rows against stored rows.
type changeSet[T any] struct {
	creates    []T
	updates    []T
	unchanged  int
	duplicates int
	// keys holds the identity of every incoming row, used for pruning.
	keys map[string]struct{}
}

// diffByKey partitions incoming rows into creates and updates. Rows whose key is
// already stored are passed through adopt (to take over the stored id) and only
// land in updates when changed reports a difference. Repeated incoming keys keep
// the first row.
func diffByKey[T any](
	incoming []T,
	existing map[string]T,
	key func(T) string,
	adopt func(stored T, row *T),
	changed func(stored, row T) bool,
) changeSet[T] {
	cs := changeSet[T]{keys: make(map[string]struct{}, len(incoming))}
	for _, row := range incoming {
		k := key(row)
		if _, dup := cs.keys[k]; dup {
			cs.duplicates++
			continue
		}
		cs.keys[k] = struct{}{}

		stored, ok := existing[k]
		if !ok {
			cs.creates = append(cs.creates, row)
			continue
		}
		adopt(stored, &row)
		if changed(stored, row) {
			cs.updates = append(cs.updates, row)
		} else {
			cs.unchanged++
		}
	}
	return cs
}

// indexByKey maps rows by their identity key.
func indexByKey[T any](rows []T, key func(T) string) map[string]T {
	m := make(map[string]T, len(rows))
	for _, r := range rows {
		m[key(r)] = r
	}
	return m
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func chunk[T any](rows []T, size int) [][]T {
	if size <= 0 {
		size = len(rows)
	}
	var chunks [][]T
	for size > 0 && size < len(rows) {
		rows, chunks = rows[size:], append(chunks, rows[:size])
	}
	if len(rows) > 0 {
		chunks = append(chunks, rows)
	}
	return chunks
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
