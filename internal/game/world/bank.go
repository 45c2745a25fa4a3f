package world

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bank is the catalog of candidate room names a game draws from.
type Bank []string

// DefaultBank returns the built-in ten-room starship catalog.
func DefaultBank() Bank {
	return Bank{
		"Conference",
		"Lounge",
		"Bridge",
		"Transporter",
		"Holodeck",
		"Sickbay",
		"Engineering",
		"Cargo",
		"Lab",
		"Shuttlebay",
	}
}

// Validate checks that the bank can supply a game of roomCount rooms.
//
// Postcondition: Returns nil if the bank holds at least roomCount distinct,
// non-empty names, or an error describing the first violation.
func (b Bank) Validate(roomCount int) error {
	if len(b) < roomCount {
		return fmt.Errorf("bank holds %d names, need at least %d", len(b), roomCount)
	}
	seen := make(map[string]bool, len(b))
	for i, name := range b {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("bank entry %d: name must not be empty", i)
		}
		if seen[name] {
			return fmt.Errorf("bank entry %d: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

// yamlBankFile is the top-level YAML structure for bank files.
type yamlBankFile struct {
	Bank yamlBank `yaml:"bank"`
}

// yamlBank is the YAML representation of a room bank.
type yamlBank struct {
	Name  string   `yaml:"name"`
	Rooms []string `yaml:"rooms"`
}

// LoadBankFromFile reads a room bank from a YAML file.
//
// Precondition: path must point to a valid YAML bank file.
// Postcondition: Returns the bank, or a non-nil error. The bank is NOT yet
// validated against a room count; callers do that with Validate.
func LoadBankFromFile(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bank file %s: %w", path, err)
	}
	return LoadBankFromBytes(data)
}

// LoadBankFromBytes parses a room bank from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the bank schema.
// Postcondition: Returns the bank, or a non-nil error.
func LoadBankFromBytes(data []byte) (Bank, error) {
	var file yamlBankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing bank YAML: %w", err)
	}

	bank := make(Bank, 0, len(file.Bank.Rooms))
	for _, name := range file.Bank.Rooms {
		bank = append(bank, strings.TrimSpace(name))
	}
	if len(bank) == 0 {
		return nil, fmt.Errorf("bank contains no rooms")
	}
	return bank, nil
}
