package lightlab

import (
	"fmt"
	"reflect"
)

const bindTag = "lightlab"

// floatField resolves field on target to a settable float64. field matches a
// `lightlab:"..."` tag first, then the Go field name; promoted fields count.
func floatField(target any, field string) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("target %T must be a non-nil pointer: %w", target, ErrUnknownField)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("target %T does not point to a struct: %w", target, ErrUnknownField)
	}

	if field == "" {
		return reflect.Value{}, fmt.Errorf("%T: empty field name: %w", target, ErrUnknownField)
	}
	sf, ok := lookupField(v.Type(), field)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%T has no field %q: %w", target, field, ErrUnknownField)
	}
	if sf.Type.Kind() != reflect.Float64 {
		return reflect.Value{}, fmt.Errorf("%T.%s is %s, not float64: %w", target, sf.Name, sf.Type, ErrUnknownField)
	}
	fv := v.FieldByIndex(sf.Index)
	if !fv.CanSet() {
		return reflect.Value{}, fmt.Errorf("%T.%s is not settable: %w", target, sf.Name, ErrUnknownField)
	}
	return fv, nil
}

func lookupField(t reflect.Type, field string) (reflect.StructField, bool) {
	fields := reflect.VisibleFields(t)
	for _, sf := range fields {
		if tag, ok := sf.Tag.Lookup(bindTag); ok && tag == field {
			return sf, true
		}
	}
	for _, sf := range fields {
		if sf.Name == field && sf.IsExported() {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

// BindableFields lists the tagged fields of target's struct type.
func BindableFields(target any) []string {
	t := reflect.TypeOf(target)
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for _, sf := range reflect.VisibleFields(t) {
		if tag := sf.Tag.Get(bindTag); tag != "" {
			names = append(names, tag)
		}
	}
	return names
}
