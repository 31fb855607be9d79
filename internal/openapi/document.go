package openapi

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// UnknownVersion is reported when a document carries no info.version string.
const UnknownVersion = "unknown"

// Document is a parsed OpenAPI description. Key order is preserved from the
// source so that re-encoding only changes what was edited.
type Document struct {
	root *Object
}

// Parse decodes an OpenAPI JSON document. The top-level value must be an object.
func Parse(data []byte) (*Document, error) {
	v, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode openapi document: %w", err)
	}
	root, ok := v.(*Object)
	if !ok {
		return nil, errors.New("decode openapi document: top-level value is not an object")
	}
	return &Document{root: root}, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Root exposes the top-level object.
func (d *Document) Root() *Object {
	return d.root
}

// Version returns info.version, or UnknownVersion when absent.
func (d *Document) Version() string {
	info, ok := d.root.Get("info")
	if !ok {
		return UnknownVersion
	}
	obj, ok := info.(*Object)
	if !ok {
		return UnknownVersion
	}
	v, ok := obj.Get("version")
	if !ok {
		return UnknownVersion
	}
	s, ok := v.(string)
	if !ok {
		return UnknownVersion
	}
	return s
}

// Bytes encodes the document as two-space indented JSON with a trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	var enc encoder
	if err := enc.value(d.root, 0); err != nil {
		return nil, err
	}
	enc.buf.WriteByte('\n')
	return enc.buf.Bytes(), nil
}

// Encode writes the document to w.
func (d *Document) Encode(w io.Writer) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes the document to path, replacing its contents.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
