// Package schema holds the JSON schemas describing the response
// body of every route.
package schema

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Name identifies the response schema of a route.
type Name string

const (
	Welcome  Name = "welcome"
	Health   Name = "health"
	Hello    Name = "hello"
	Echo     Name = "echo"
	Search   Name = "search"
	Random   Name = "random"
	Info     Name = "info"
	NotFound Name = "not_found"
	Fault    Name = "fault"
)

// Names lists all known schemas.
var Names = []Name{
	Welcome,
	Health,
	Hello,
	Echo,
	Search,
	Random,
	Info,
	NotFound,
	Fault,
}

//go:embed *.json
var files embed.FS

type Schemas struct {
	schemas map[Name]*gojsonschema.Schema
}

// New compiles all embedded schemas.
func New() (*Schemas, error) {
	schemas := make(map[Name]*gojsonschema.Schema, len(Names))

	for _, name := range Names {
		data, err := files.ReadFile(string(name) + ".json")
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}

		schemas[name] = schema
	}

	return &Schemas{schemas: schemas}, nil
}

func (s *Schemas) Get(name Name) (*gojsonschema.Schema, error) {
	schema, ok := s.schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema not found: %s", name)
	}

	return schema, nil
}

// Validate validates a JSON document against the named schema.
func (s *Schemas) Validate(name Name, data []byte) (*gojsonschema.Result, error) {
	schema, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	return schema.Validate(gojsonschema.NewBytesLoader(data))
}
