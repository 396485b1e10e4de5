package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ValidatorFunc builds a Rule for a field value and the rule's parameters.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"email":    emailValidator,
		"password": passwordValidator,
	}
)

// ErrNotStructPointer is returned by ValidateStruct for anything other than a
// pointer to a struct.
var ErrNotStructPointer = errors.New("validator: must pass a pointer to struct")

// RegisterValidator adds a custom validator function to the registry.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates fields by their `validate` tags. Rules are
// separated by ";" and take parameters after ":", e.g.
// `validate:"required;min:8;max:128"`. Fields are reported under their json
// name when they have one, otherwise the Go name. Nested structs are visited
// and their field paths joined with ".".
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	var errs ValidationErrors
	validateStruct(rv.Elem(), "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStruct(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		path := fieldName(sf)
		if prefix != "" {
			path = prefix + "." + path
		}

		if field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
		}

		if field.Kind() == reflect.Struct && tag == "" {
			validateStruct(field, path, errs)
			continue
		}

		if tag != "" {
			validateField(path, field, tag, errs)
		}
	}
}

func fieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

func validateField(path string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for entry := range strings.SplitSeq(tag, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, rawParams, _ := strings.Cut(entry, ":")

		var params []string
		if rawParams = strings.TrimSpace(rawParams); rawParams != "" {
			for p := range strings.SplitSeq(rawParams, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}

		fn, ok := registry[strings.TrimSpace(name)]
		if !ok {
			continue
		}
		if rule := fn(path, field, params); rule.Check != nil && !rule.Check() {
			errs.Add(rule.Error)
		}
	}
}

func pass() Rule { return Rule{Check: func() bool { return true }} }

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	switch value.Kind() {
	case reflect.String:
		return RequiredString(field, value.String())
	case reflect.Invalid:
		return Rule{
			Check: func() bool { return false },
			Error: RequiredString(field, "").Error,
		}
	case reflect.Pointer, reflect.Interface:
		return Rule{
			Check: func() bool { return !value.IsNil() },
			Error: RequiredString(field, "").Error,
		}
	default:
		return Rule{
			Check: func() bool { return !value.IsZero() },
			Error: RequiredString(field, "").Error,
		}
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return pass()
	}
	n, err := strconv.Atoi(params[0])
	if err != nil {
		return pass()
	}
	return MinLenString(field, value.String(), n)
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return pass()
	}
	n, err := strconv.Atoi(params[0])
	if err != nil {
		return pass()
	}
	return MaxLenString(field, value.String(), n)
}

func emailValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidEmail(field, value.String())
}

func passwordValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidPassword(field, value.String(), DefaultPasswordPolicy())
}
