package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kinlab/kinchart/pkg/layout"
)

// =============================================================================
// Chart Serialization API
// =============================================================================

// Marshal serializes a Chart to pretty-printed JSON bytes.
func Marshal(c Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes into a validated Chart.
func Unmarshal(data []byte) (Chart, error) {
	return readFrom(bytes.NewReader(data))
}

// Write writes a Chart as JSON to an io.Writer.
func Write(c Chart, w io.Writer) error {
	return writeTo(c, w)
}

// Read decodes a JSON chart from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (Chart, error) {
	return readFrom(r)
}

// WriteFile writes a Chart to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(c Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(c, f)
}

// ReadFile reads a JSON file and returns the decoded, validated Chart.
func ReadFile(path string) (Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return Chart{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a layout result to pretty-printed JSON bytes.
// Strategies already emit nodes and edges sorted by ID, so the output is
// deterministic for identical inputs.
func MarshalLayout(res *layout.Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a layout result.
func UnmarshalLayout(data []byte) (*layout.Result, error) {
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	return &res, nil
}

// WriteLayoutFile writes a layout result to a JSON file.
func WriteLayoutFile(res *layout.Result, path string) error {
	data, err := MarshalLayout(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a layout result from a JSON file.
func ReadLayoutFile(path string) (*layout.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(c Chart, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Chart, error) {
	var c Chart
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Chart{}, fmt.Errorf("decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Chart{}, err
	}
	return c, nil
}
