// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the 'License');
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an 'AS IS' BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validater

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const tagKeyName = "valid"

// rule returns nil when the field value is valid
type rule func(value reflect.Value) error

var rules = map[string]rule{
	"isNotZeroValue": isNotZeroValue,
	"isPositive":     isPositive,
	"isJPEGQuality":  isJPEGQuality,
}

// FieldError names the field that failed a rule
type FieldError struct {
	Path  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s '%s' %v", e.Path, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func isNotZeroValue(value reflect.Value) error {
	switch value.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		if value.Len() == 0 {
			return fmt.Errorf("must not be empty %s", value.Kind())
		}
	case reflect.Int, reflect.Int64:
		if value.Int() == 0 {
			return fmt.Errorf("must not be zero %s", value.Kind())
		}
	default:
		return fmt.Errorf("kind %s not managed by isNotZeroValue", value.Kind())
	}
	return nil
}

func isPositive(value reflect.Value) error {
	switch value.Kind() {
	case reflect.Int, reflect.Int64:
		if value.Int() <= 0 {
			return fmt.Errorf("must be greater than zero, got %d", value.Int())
		}
		return nil
	}
	return fmt.Errorf("kind %s not managed by isPositive", value.Kind())
}

// isJPEGQuality accepts the encoder quality range 1 to 100
func isJPEGQuality(value reflect.Value) error {
	if value.Kind() != reflect.Int {
		return fmt.Errorf("kind %s not managed by isJPEGQuality", value.Kind())
	}
	if quality := value.Int(); quality < 1 || quality > 100 {
		return fmt.Errorf("must be in range 1 to 100, got %d", quality)
	}
	return nil
}

// isOneOf tag format isOneOf:a|b|c, works on string based types like FitMode
func isOneOf(accepted []string) rule {
	return func(value reflect.Value) error {
		if value.Kind() != reflect.String {
			return fmt.Errorf("kind %s not managed by isOneOf", value.Kind())
		}
		for _, a := range accepted {
			if value.String() == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v, got '%s'", accepted, value.String())
	}
}

func ruleFor(tagValue string) rule {
	name, _, _ := strings.Cut(tagValue, ",")
	if r, ok := rules[name]; ok {
		return r
	}
	if list, ok := strings.CutPrefix(name, "isOneOf:"); ok {
		return isOneOf(strings.Split(list, "|"))
	}
	return nil
}

func isStruct(value reflect.Value) bool {
	return value.Kind() == reflect.Struct ||
		(value.Kind() == reflect.Ptr && !value.IsNil() && value.Elem().Kind() == reflect.Struct)
}

// check walks a struct depth first, path is the slash separated chain of parent field names
func check(value reflect.Value, path string) (errs []error) {
	for value.Kind() == reflect.Interface || value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return []error{fmt.Errorf("%s: type %s is not a struct", path, value.Kind())}
	}
	for i := 0; i < value.NumField(); i++ {
		typeField := value.Type().Field(i)
		if !typeField.IsExported() {
			continue
		}
		field := value.Field(i)
		if field.Kind() == reflect.Interface {
			field = field.Elem()
		}
		tag := typeField.Tag.Get(tagKeyName)
		// valid:"-" stops the walk, time.Time has only unexported fields
		if tag != "-" && isStruct(field) {
			errs = append(errs, check(field, path+"/"+typeField.Name)...)
			continue
		}
		r := ruleFor(tag)
		if r == nil || !field.IsValid() {
			continue
		}
		if err := r(field); err != nil {
			errs = append(errs, &FieldError{Path: path, Field: typeField.Name, Err: err})
		}
	}
	return errs
}

// ValidateStruct checks the valid tags of a struct and of its nested structs, every invalid field is reported
func ValidateStruct(structure interface{}, pedigree string) error {
	if structure == nil {
		return nil
	}
	errs := check(reflect.ValueOf(structure), pedigree)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("settings validation failed, %d invalid field(s) in %s: %w", len(errs), pedigree, errors.Join(errs...))
}
