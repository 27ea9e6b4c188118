// Package jsoninput loads estimate files written in JSON.
// Files are validated against an embedded JSON Schema before decoding.
package jsoninput

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"

	"sparkyestimate/core/engine"
	"sparkyestimate/core/types"
	"sparkyestimate/internal/errors"
)

//go:embed estimate.schema.json
var schemaJSON []byte

const schemaURL = "estimate.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Options are the defaults for settings an estimate file leaves unset
type Options struct {
	FillFromCatalog bool
	IncludePermit   bool
	DefaultRate     decimal.Decimal
}

// document shadows the request flag so an absent value can be told apart
type document struct {
	engine.Request
	FillFromCatalog *bool `json:"fill_from_catalog"`
}

// presence records which params keys the file wrote
type presence struct {
	Params map[string]json.RawMessage `json:"params"`
}

// given lists the params keys holding a non-null value
func (p presence) given() types.ParamSet {
	set := make(types.ParamSet, len(p.Params))
	for name, raw := range p.Params {
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			set.Add(name)
		}
	}
	return set
}

// Schema returns the compiled estimate schema
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// LoadEstimate reads an estimate file
func LoadEstimate(path string, opts Options) (*engine.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("estimate file", path)
		}
		return nil, errors.Wrapf(errors.TypeParsing, err, "failed to read %s", path)
	}
	return ParseEstimate(data, path, opts)
}

// ParseEstimate validates and decodes an estimate
func ParseEstimate(data []byte, filename string, opts Options) (*engine.Request, error) {
	if err := Validate(data); err != nil {
		if errors.IsType(err, errors.TypeInternal) {
			return nil, err
		}
		return nil, errors.Wrapf(errors.TypeInput, err, "invalid estimate %s", filename).
			WithContext("file", filename)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Parsing(fmt.Sprintf("failed to decode %s", filename), err)
	}

	var set presence
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, errors.Parsing(fmt.Sprintf("failed to decode %s", filename), err)
	}

	req := doc.Request
	req.Given = set.given()
	if !req.Given.Has("include_permit") {
		req.Params.IncludePermit = opts.IncludePermit
	}
	req.FillFromCatalog = opts.FillFromCatalog
	if doc.FillFromCatalog != nil {
		req.FillFromCatalog = *doc.FillFromCatalog
	}
	if req.DefaultRate.IsZero() {
		req.DefaultRate = opts.DefaultRate
	}
	return &req, nil
}

// Validate checks raw JSON against the estimate schema.
// Numbers are kept as json.Number so large amounts validate exactly.
func Validate(data []byte) error {
	schema, err := Schema()
	if err != nil {
		return errors.Internal("estimate schema does not compile", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
