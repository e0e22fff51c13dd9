package memoize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// keySeparator delimits tuple positions inside a serialized key.
const keySeparator = "::"

// KeySerializer turns an argument tuple into a stable string key.
// Implementations must be deterministic within one process: the same tuple
// must always produce the same key.
type KeySerializer interface {
	SerializeKey(args ...any) string
}

// NewDefaultKeySerializer returns the reflection-based serializer used by
// the Hashed and Cached strategies. Functions and channels serialize by
// address, pointers by their pointee, maps by sorted key-value pairs and
// everything else by value (with a JSON fallback), so two structurally equal
// tuples produce the same key.
func NewDefaultKeySerializer() KeySerializer { return defaultKeySerializer{} }

type defaultKeySerializer struct{}

func (s defaultKeySerializer) SerializeKey(args ...any) string {
	// The leading arity segment keeps tuples of different lengths apart.
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, fmt.Sprintf("%d", len(args)))
	for _, arg := range args {
		parts = append(parts, s.serialize(arg))
	}
	return strings.Join(parts, keySeparator)
}

func (s defaultKeySerializer) serialize(v any) string {
	if v == nil {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan:
		return fmt.Sprintf("%s:%p", rv.Kind(), v)
	case reflect.Pointer:
		if rv.IsNil() {
			return "ptr:nil"
		}
		return s.serialize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "slice:nil"
		}
		elems := make([]string, rv.Len())
		for i := range elems {
			elems[i] = s.serialize(rv.Index(i).Interface())
		}
		return fmt.Sprintf("%s[%d]:{%s}", rv.Kind(), rv.Len(), strings.Join(elems, ","))
	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		pairs := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, s.serialize(iter.Key().Interface())+"="+s.serialize(iter.Value().Interface()))
		}
		sort.Strings(pairs)
		return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
	case reflect.Struct:
		rt := rv.Type()
		fields := make([]string, 0, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, f.Name+":"+s.serialize(rv.Field(i).Interface()))
		}
		return fmt.Sprintf("%s:{%s}", rt.String(), strings.Join(fields, ","))
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return fmt.Sprintf("%v", v)
	}
	if data, err := json.Marshal(v); err == nil {
		return "json:" + string(data)
	}
	return "opaque:" + rv.Type().String()
}
