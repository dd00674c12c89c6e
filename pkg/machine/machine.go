package machine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Description I/O
// =============================================================================

// ReadDescriptionFile reads an automaton description from a file. Files with
// a .toml extension are decoded as TOML; everything else as JSON.
func ReadDescriptionFile(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("open %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return unmarshalDescriptionTOML(data)
	}
	return ReadDescription(bytes.NewReader(data))
}

// ReadDescription decodes a JSON description from an io.Reader.
// Use ReadDescriptionFile for files or pass bytes.NewReader for in-memory data.
func ReadDescription(r io.Reader) (Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Description{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// unmarshalDescriptionTOML decodes a TOML description:
//
//	start = [0]
//	accept = [2]
//	alphabet = ["a", "b"]
//
//	[[transition]]
//	from = 0
//	symbol = "a"
//	to = 0
func unmarshalDescriptionTOML(data []byte) (Description, error) {
	var d Description
	if err := toml.Unmarshal(data, &d); err != nil {
		return Description{}, fmt.Errorf("decode toml: %w", err)
	}
	return d, nil
}

// =============================================================================
// Machine I/O
// =============================================================================

// MarshalMachine converts a Machine to JSON bytes.
func MarshalMachine(m Machine) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeMachineTo(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalMachine deserializes JSON bytes to a Machine.
func UnmarshalMachine(data []byte) (Machine, error) {
	var m Machine
	if err := json.Unmarshal(data, &m); err != nil {
		return Machine{}, err
	}
	return m, nil
}

// WriteMachineFile writes a Machine to a JSON file.
// The file is created with 0644 permissions.
func WriteMachineFile(m Machine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeMachineTo(m, f)
}

// WriteMachine writes a Machine as JSON to an io.Writer.
// Use MarshalMachine for in-memory serialization or WriteMachineFile for files.
func WriteMachine(m Machine, w io.Writer) error {
	return writeMachineTo(m, w)
}

// ReadMachineFile reads a JSON file and returns the decoded Machine.
func ReadMachineFile(path string) (Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return Machine{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var m Machine
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Machine{}, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeMachineTo(m Machine, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
