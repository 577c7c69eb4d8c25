// Package jqfilter wraps github.com/itchyny/gojq behind a compile-once,
// run-many-times contract: one query compiles to one Filter, and that
// Filter can then be applied to any number of JSON values without
// recompiling.
package jqfilter

import (
	"fmt"

	"github.com/itchyny/gojq"
)

// Filter is a compiled jq query ready to run against JSON values.
type Filter struct {
	code *gojq.Code
}

// Compile parses and compiles query. A malformed query fails here, at setup
// time, rather than on first use.
func Compile(query string) (*Filter, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("jq: parsing query %q: %w", query, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("jq: compiling query %q: %w", query, err)
	}
	return &Filter{code: code}, nil
}

// Run applies f to value and collects every emitted result in order. A
// value that the query maps to nothing produces an empty, non-nil slice.
func (f *Filter) Run(value any) ([]any, error) {
	results := make([]any, 0)
	iter := f.code.Run(value)
	for {
		v, ok := iter.Next()
		if !ok {
			return results, nil
		}
		if err, ok := v.(error); ok {
			if haltErr, isHalt := err.(*gojq.HaltError); isHalt && haltErr.Value() == nil {
				return results, nil
			}
			return results, fmt.Errorf("jq: evaluating query: %w", err)
		}
		results = append(results, v)
	}
}
