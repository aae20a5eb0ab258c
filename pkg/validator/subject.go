package validator

import (
	"reflect"
	"strings"
)

// Subject exposes named fields of the value under validation.
//
// Lookup reports ok=false when the field does not exist on the subject's shape.
// A field that exists but holds no value must be reported as (nil, true) so
// rules can tell an unknown property apart from a null one.
type Subject interface {
	Lookup(name string) (value any, ok bool)
}

// SubjectFunc adapts a plain function to the Subject interface.
type SubjectFunc func(name string) (any, bool)

func (f SubjectFunc) Lookup(name string) (any, bool) {
	return f(name)
}

// Map is a Subject backed by a decoded document (JSON, YAML, form values).
type Map map[string]any

func (m Map) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Accessors is an explicit accessor table for a subject type. Build it once per
// type and Bind it to each instance being validated:
//
//	var invoiceFields = validator.Accessors[Invoice]{
//	    "Subtotal": func(i Invoice) any { return i.Subtotal },
//	    "Tax":      func(i Invoice) any { return i.Tax },
//	}
//
//	subject := invoiceFields.Bind(inv)
type Accessors[T any] map[string]func(T) any

// Bind returns a Subject reading fields from v through the accessor table.
func (a Accessors[T]) Bind(v T) Subject {
	return SubjectFunc(func(name string) (any, bool) {
		get, ok := a[name]
		if !ok || get == nil {
			return nil, false
		}
		return get(v), true
	})
}

// Struct wraps a struct (or pointer to struct) in a reflection-based Subject.
// Fields resolve by exported Go name first, then by the name in their json tag.
// Nil pointer and nil interface fields are reported as null.
func Struct(v any) (Subject, error) {
	if v == nil {
		return nil, ErrNilSubject
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrNilSubject
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrNotAStruct
	}
	return structSubject{v: rv}, nil
}

type structSubject struct {
	v reflect.Value
}

func (s structSubject) Lookup(name string) (any, bool) {
	if name == "" {
		return nil, false
	}

	field, ok := s.field(name)
	if !ok {
		return nil, false
	}

	if !field.IsValid() {
		return nil, true
	}

	switch field.Kind() {
	case reflect.Pointer, reflect.Interface:
		if field.IsNil() {
			return nil, true
		}
	}
	return field.Interface(), true
}

func (s structSubject) field(name string) (reflect.Value, bool) {
	t := s.v.Type()
	if sf, ok := t.FieldByName(name); ok && sf.IsExported() {
		// A nil embedded pointer leaves the promoted field unreachable; it reads as null.
		f, err := s.v.FieldByIndexErr(sf.Index)
		if err != nil {
			return reflect.Value{}, true
		}
		return f, true
	}

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if tag != "" && tag != "-" && tag == name {
			return s.v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
