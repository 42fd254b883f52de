// Package jsonx owns the JSON codec every HTTP response goes through.
//
// The codec is configured once and shared: struct fields drive the wire
// shape (untagged exported fields marshal as snake_case, unexported fields
// are included, accessor methods are never consulted) and map keys are
// sorted so output stays deterministic across runs.
package jsonx

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/json-iterator/go/extra"
)

var (
	once sync.Once
	api  jsoniter.API
)

// Mapper returns the shared JSON codec. The first call freezes the
// configuration; every later call returns the identical instance.
func Mapper() jsoniter.API {
	once.Do(func() {
		extra.SetNamingStrategy(extra.LowerCaseWithUnderscores)
		extra.SupportPrivateFields()
		api = jsoniter.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
		}.Froze()
	})
	return api
}

func Marshal(v interface{}) ([]byte, error) {
	return Mapper().Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return Mapper().Unmarshal(data, v)
}
