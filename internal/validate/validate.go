// Package validate provisions the request validator shared by gin binding
// and any service-level checks.
package validate

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Instance returns the shared validator. Created on first access, reused for
// the life of the process.
func Instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		// Report field names the way they appear on the wire.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		instance = v
	})
	return instance
}

// Struct validates v with the shared instance.
func Struct(v interface{}) error {
	return Instance().Struct(v)
}

type ginValidator struct{}

func (ginValidator) ValidateStruct(obj interface{}) error {
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	switch value.Kind() {
	case reflect.Struct:
		return Instance().Struct(value.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := (ginValidator{}).ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func (ginValidator) Engine() interface{} { return Instance() }

// UseWithGin makes gin's binding layer validate through the shared instance,
// so ShouldBind and manual Struct calls agree.
func UseWithGin() {
	binding.Validator = ginValidator{}
}
