package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "https://plankit.dev/schemas/plan.schema.json"

//go:embed plan.schema.json
var schemaJSON []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Schema returns the JSON Schema for plan files.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func planSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("load plan schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateSchema checks root against the embedded JSON Schema. Every leaf
// error becomes a violation with a "schema:" message prefix.
func validateSchema(root *yaml.Node) []Violation {
	schema, err := planSchema()
	if err != nil {
		return []Violation{{Message: "schema: " + err.Error()}}
	}

	raw, err := nodeValue(root)
	if err != nil {
		return []Violation{{Message: fmt.Sprintf("schema: decode document: %v", err)}}
	}

	// Round-trip through JSON so values carry JSON types.
	data, err := json.Marshal(raw)
	if err != nil {
		return []Violation{{Message: fmt.Sprintf("schema: document is not JSON compatible: %v", err)}}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []Violation{{Message: fmt.Sprintf("schema: document is not JSON compatible: %v", err)}}
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Violation{{Message: "schema: " + err.Error()}}
	}

	var violations []Violation
	collectSchemaErrors(&violations, ve)
	return violations
}

// nodeValue converts a YAML tree to plain values. Timestamp scalars keep
// their source text so dates stay in YYYY-MM-DD form.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	}

	if n.ShortTag() == "!!timestamp" {
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func collectSchemaErrors(out *[]Violation, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: "schema: " + err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/status" into "tasks[0].status".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
