// Package transfer converts goals between the store-native document
// shape and the export file format: a JSON array of goal objects with
// every timestamp rendered as a strict ISO-8601 UTC string. Import
// reverses the walk and regenerates goal ids so a re-imported file can
// never collide with goals already in the document.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
)

// isoPattern is deliberately strict: date, time, optional milliseconds,
// literal Z. Anything looser (offsets, second fractions of other
// widths) passes through import untouched.
var isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z$`)

var timestampType = reflect.TypeOf(domain.Timestamp{})

// ─── Export ─────────────────────────────────────────────────────────────────

// SerializeForExport deep-walks every goal into a plain tree, replacing
// each timestamp with its ISO-8601 string. All other values pass
// through unchanged.
func SerializeForExport(goals []domain.Goal) []map[string]any {
	out := make([]map[string]any, len(goals))
	for i, g := range goals {
		out[i] = exportStruct(reflect.ValueOf(g))
	}
	return out
}

func exportValue(v reflect.Value) any {
	if v.Type() == timestampType {
		return v.Interface().(domain.Timestamp).ISO()
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return exportValue(v.Elem())
	case reflect.Struct:
		return exportStruct(v)
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = exportValue(v.Index(i))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = exportValue(iter.Value())
		}
		return out
	default:
		return v.Interface()
	}
}

func exportStruct(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[name] = exportValue(v.Field(i))
	}
	return out
}

// ─── Import ─────────────────────────────────────────────────────────────────

// goalSchema is the fixed shape every import element must satisfy
// before deserialization is attempted. Timestamps arrive as ISO
// strings at this stage.
type goalSchema struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Status    int    `json:"status" validate:"gte=0,lte=3"`
	CreatedAt string `json:"createdAt" validate:"required"`
	UpdatedAt string `json:"updatedAt" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DeserializeForImport validates the payload against the fixed goal
// schema, deep-walks it converting strict-ISO strings back to
// store-native timestamps, and regenerates every goal's id.
func DeserializeForImport(raw []byte) ([]domain.Goal, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, domain.ImportValidation("Import file must be a JSON array of goals.", err)
	}

	for i, elem := range elems {
		var schema goalSchema
		if err := json.Unmarshal(elem, &schema); err != nil {
			return nil, domain.ImportValidation(
				fmt.Sprintf("Goal at index %d is not a valid goal object.", i), err)
		}
		if err := validate.Struct(schema); err != nil {
			return nil, domain.ImportValidation(
				fmt.Sprintf("Goal at index %d failed validation.", i), err)
		}
	}

	// Decode with UseNumber so numeric values survive the walk without
	// float64 rounding.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree []any
	if err := dec.Decode(&tree); err != nil {
		return nil, domain.ImportValidation("Import file must be a JSON array of goals.", err)
	}

	for _, elem := range tree {
		obj := elem.(map[string]any) // schema pass guarantees objects
		obj["id"] = uuid.NewString()
		reviveTimestamps(obj)
	}

	revived, err := json.Marshal(tree)
	if err != nil {
		return nil, domain.ImportValidation("Import payload could not be processed.", err)
	}
	var goals []domain.Goal
	if err := json.Unmarshal(revived, &goals); err != nil {
		return nil, domain.ImportValidation("Import payload could not be processed.", err)
	}
	return goals, nil
}

// reviveTimestamps walks a decoded tree in place, replacing each string
// that matches the strict ISO pattern AND parses as a real date with
// its epoch-millisecond number. Everything else passes through.
func reviveTimestamps(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, val := range node {
			node[k] = reviveTimestamps(val)
		}
		return node
	case []any:
		for i, val := range node {
			node[i] = reviveTimestamps(val)
		}
		return node
	case string:
		if !isoPattern.MatchString(node) {
			return node
		}
		parsed, err := time.Parse(time.RFC3339, node)
		if err != nil {
			return node
		}
		return json.Number(strconv.FormatInt(parsed.UnixMilli(), 10))
	default:
		return v
	}
}
