package fiber

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unsafe"
)

const eventPrefix = "on"

func isEvent(key string) bool {
	return strings.HasPrefix(key, eventPrefix) && len(key) > len(eventPrefix)
}

func isProperty(key string) bool {
	return key != ChildrenKey && !isEvent(key)
}

// eventName maps onClick to click.
func eventName(key string) string {
	return strings.ToLower(key[len(eventPrefix):])
}

// updateProps brings a retained handle from prev to next. Listeners that go
// away are detached before anything else and new listeners are attached last.
func updateProps(t Target, h Handle, prev, next Props) error {
	prevKeys, nextKeys := sortedKeys(prev), sortedKeys(next)

	for _, k := range prevKeys {
		if !isEvent(k) {
			continue
		}
		nv, ok := next[k]
		if ok && sameValue(prev[k], nv) {
			continue
		}
		if err := t.RemoveListener(h, eventName(k), prev[k]); err != nil {
			return fmt.Errorf("remove listener %q: %w", k, err)
		}
	}

	for _, k := range prevKeys {
		if !isProperty(k) {
			continue
		}
		if _, ok := next[k]; ok {
			continue
		}
		if err := t.RemoveProperty(h, k); err != nil {
			return fmt.Errorf("remove property %q: %w", k, err)
		}
	}

	for _, k := range nextKeys {
		if !isProperty(k) {
			continue
		}
		if pv, ok := prev[k]; ok && sameValue(pv, next[k]) {
			continue
		}
		if err := t.SetProperty(h, k, next[k]); err != nil {
			return fmt.Errorf("set property %q: %w", k, err)
		}
	}

	for _, k := range nextKeys {
		if !isEvent(k) {
			continue
		}
		if pv, ok := prev[k]; ok && sameValue(pv, next[k]) {
			continue
		}
		if next[k] == nil {
			continue
		}
		if err := t.AddListener(h, eventName(k), next[k]); err != nil {
			return fmt.Errorf("add listener %q: %w", k, err)
		}
	}

	return nil
}

// sortedKeys keeps target calls in a stable order between runs.
func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sameValue is a shallow equality that never panics. Reference kinds compare
// by identity. Funcs compare by closure identity: the same func value matches
// itself, two closures from one literal do not.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return funcData(a) == funcData(b)
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// eface is the layout of an interface holding a value of any type.
type eface struct {
	typ, data unsafe.Pointer
}

// funcData is the closure pointer of a func stored in v. Nil funcs yield nil.
func funcData(v any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&v)).data
}
