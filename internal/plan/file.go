package plan

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSchemaHint is written as the first line of plan files that were
// parsed without one.
const DefaultSchemaHint = "# yaml-language-server: $schema="

const schemaHintPrefix = "# yaml-language-server:"

// ParseError reports plan text that cannot be read as a YAML mapping.
// It is a structural failure, distinct from schema violations.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse plan: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// File is a parsed plan file. Root keeps the YAML tree so rewrites
// preserve key order and comments; Doc is the typed view of the same data.
type File struct {
	// Hint is the leading schema-hint comment line, verbatim, or "".
	Hint string
	// Root is the top-level mapping node.
	Root *yaml.Node
	// Doc is decoded best-effort; fields with mismatched types stay zero.
	Doc Document
	// DecodeErr holds the type mismatches met while decoding Doc.
	DecodeErr error

	doc *yaml.Node
}

// Parse reads plan text.
func Parse(data []byte) (*File, error) {
	hint, body := splitHint(data)

	var doc yaml.Node
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ParseError{Err: errors.New("document is empty")}
	}
	root := Resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Err: fmt.Errorf("line %d: top level must be a mapping", root.Line)}
	}

	f := &File{Hint: hint, Root: root, doc: &doc}
	f.decode()
	return f, nil
}

func (f *File) decode() {
	f.Doc = Document{}
	f.DecodeErr = f.Root.Decode(&f.Doc)
}

// Encode renders the file as YAML text with the schema hint on the first
// line.
func (f *File) Encode() ([]byte, error) {
	var buf bytes.Buffer
	hint := f.Hint
	if hint == "" {
		hint = DefaultSchemaHint
	}
	buf.WriteString(hint)
	buf.WriteByte('\n')

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f.doc); err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of f.
func (f *File) Clone() *File {
	doc := cloneNode(f.doc)
	c := &File{Hint: f.Hint, doc: doc, Root: Resolve(doc.Content[0])}
	c.decode()
	return c
}

func splitHint(data []byte) (hint string, body []byte) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	line, rest, found := bytes.Cut(data, []byte("\n"))
	first := strings.TrimRight(string(line), "\r")
	if !strings.HasPrefix(first, schemaHintPrefix) {
		return "", data
	}
	if !found {
		rest = nil
	}
	return first, rest
}
