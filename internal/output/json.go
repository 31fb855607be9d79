package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/specrelease/internal/report"
)

// JSONRenderer emits the run summary as structured data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Render encodes the summary as indented JSON.
func (j *JSONRenderer) Render(summary report.Summary) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
