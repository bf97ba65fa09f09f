package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type sampleOutput struct {
	BookID string `json:"book_id" yaml:"book_id"`
	Units  int    `json:"units" yaml:"units"`
}

func TestOutputTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputTo(&buf, OutputFormatJSON, sampleOutput{BookID: "1342", Units: 6}); err != nil {
		t.Fatal(err)
	}

	var got sampleOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if got.BookID != "1342" || got.Units != 6 {
		t.Errorf("round-trip = %+v", got)
	}
}

func TestOutputTo_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputTo(&buf, OutputFormatYAML, sampleOutput{BookID: "1342", Units: 6}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "book_id: \"1342\"") && !strings.Contains(out, "book_id: 1342") {
		t.Errorf("yaml output missing book_id: %q", out)
	}
}

func TestOutputTo_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputTo(&buf, OutputFormat("xml"), sampleOutput{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
