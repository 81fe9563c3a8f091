package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// ─── Dot-path Document Surgery ──────────────────────────────────────────────
// The store holds each document as a JSON object tree. A dot-path
// update replaces the value at one nested field without touching
// siblings; missing intermediate objects are created on the way down.
// Numbers are kept as json.Number end to end so epoch-millisecond
// timestamps survive the decode/encode cycle bit for bit.

// decodeTree parses a JSON document preserving number fidelity.
func decodeTree(doc []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return tree, nil
}

// valueTree normalizes an arbitrary Go value into the generic JSON tree
// form (maps, slices, json.Number, string, bool, nil).
func valueTree(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode field value: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("normalize field value: %w", err)
	}
	return out, nil
}

// setPath writes value at the dot-separated path, creating intermediate
// objects as needed. It fails if a path segment traverses a non-object.
func setPath(tree map[string]any, path string, value any) error {
	parts := strings.Split(path, ".")
	cur := tree
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("invalid field path %q", path)
		}
		if i == len(parts)-1 {
			cur[part] = value
			return nil
		}
		next, ok := cur[part]
		if !ok || next == nil {
			child := map[string]any{}
			cur[part] = child
			cur = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field path %q traverses non-object at %q", path, part)
		}
		cur = child
	}
	return nil
}

// getPath reads the value at the dot-separated path; ok is false when
// any segment is absent.
func getPath(tree map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = tree
	for _, part := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// treeEqual compares two normalized tree values. json.Number compares
// by its literal, which is stable because both sides pass through
// valueTree/decodeTree.
func treeEqual(a, b any) bool {
	na, aok := a.(json.Number)
	nb, bok := b.(json.Number)
	if aok && bok {
		return na.String() == nb.String()
	}
	return reflect.DeepEqual(a, b)
}
