package graphql

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// serializeValue renders a Go value as an inline GraphQL value literal.
// Strings are quoted, slices become list literals, maps and structs become
// object literals, nil becomes null.
func serializeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return strconv.Quote(val.Format(time.RFC3339))
	case uuid.UUID:
		return strconv.Quote(val.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%v", val)
	case map[string]any:
		return serializeMap(val)
	}
	return serializeReflect(reflect.ValueOf(v))
}

func serializeMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(serializeValue(m[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}

func serializeReflect(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return serializeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "null"
		}
		var sb strings.Builder
		sb.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(serializeValue(rv.Index(i).Interface()))
		}
		sb.WriteByte(']')
		return sb.String()
	case reflect.Map:
		if rv.IsNil() {
			return "null"
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return serializeMap(m)
	case reflect.Struct:
		return serializeStruct(rv)
	case reflect.String:
		// Named string types, typically generated enum values: rendered bare.
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	default:
		return strconv.Quote(fmt.Sprint(rv.Interface()))
	}
}

// serializeStruct renders an input-object struct. Field names come from the
// json tag when present, otherwise from the lower-camelized Go name. Nil
// pointer fields are omitted, matching optional-input semantics.
func serializeStruct(rv reflect.Value) string {
	rt := rv.Type()
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Tag.Get("json")
		if idx := strings.IndexByte(name, ','); idx >= 0 {
			name = name[:idx]
		}
		if name == "-" {
			continue
		}
		if name == "" {
			name = lowerFirst(f.Name)
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(serializeValue(fv.Interface()))
	}
	sb.WriteByte('}')
	return sb.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
