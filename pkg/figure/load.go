package figure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	keyData     = "data"
	keyLayout   = "layout"
	KeyTemplate = "template"
)

// ErrMalformedDocument is returned when a source is not a graph document:
// not a JSON object, or missing the "data" list or the "layout" object.
var ErrMalformedDocument = errors.New("malformed document")

// LoadFile reads and parses the document at path. The file is only read.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a whole document from r and parses it.
func Load(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Parse(b)
}

// Parse decodes b into a Document. Only the outer shape is checked; trace
// contents are left to the pipeline.
func Parse(b []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, malformed("decoding: %v", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, malformed("unexpected content after document")
	}
	if root == nil {
		return nil, malformed("document is null")
	}

	rawData, ok := root[keyData]
	if !ok {
		return nil, malformed("missing %q", keyData)
	}
	list, ok := rawData.([]any)
	if !ok {
		return nil, malformed("%q is %T, want list", keyData, rawData)
	}
	data := make([]Trace, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, malformed("%s[%d] is %T, want object", keyData, i, item)
		}
		data[i] = Trace(obj)
	}

	rawLayout, ok := root[keyLayout]
	if !ok {
		return nil, malformed("missing %q", keyLayout)
	}
	layout, ok := rawLayout.(map[string]any)
	if !ok {
		return nil, malformed("%q is %T, want object", keyLayout, rawLayout)
	}

	delete(root, keyData)
	delete(root, keyLayout)
	var extra Object
	if len(root) > 0 {
		extra = root
	}

	return &Document{Data: data, Layout: layout, Extra: extra}, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDocument, fmt.Sprintf(format, args...))
}
