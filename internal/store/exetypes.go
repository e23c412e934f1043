package store

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Symbol names one placed fragment's address and size in the final
// executable.
type Symbol struct {
	Name    string `yaml:"name"`
	Address int    `yaml:"address"`
	Size    int    `yaml:"size"`
}

// DebugLineRecord associates a placed fragment's address with the
// fragment digest (and line_base) whose debug_line bytes, stored in the
// originating repository, describe its source locations. debug_line is
// a stay-at-home section: it never receives a layout address, so this
// is the only path by which debug info reaches the executable.
type DebugLineRecord struct {
	Address      int    `yaml:"address"`
	FragmentHash string `yaml:"fragment"`
	LineBase     int    `yaml:"line_base"`
}

// RepositoryRecord remembers which repository, and which instance of it
// (by UUID), an executable was linked against.
type RepositoryRecord struct {
	Path string    `yaml:"path"`
	UUID uuid.UUID `yaml:"uuid"`
}

// Executable is the linker's output: a name->address->bytes image plus
// enough metadata for the VM to load it and the debugger to map
// addresses back to source.
type Executable struct {
	UUID             uuid.UUID                `yaml:"uuid"`
	RepositoryRecord RepositoryRecord          `yaml:"repository_record"`
	Symbols          []Symbol                  `yaml:"symbols"`
	Data             map[SectionType][]byte    `yaml:"data"`
	Debug            []DebugLineRecord         `yaml:"debug"`
}

// NewExecutable returns an Executable stamped with a fresh link UUID and
// the given repository record, ready to receive symbols and data.
func NewExecutable(record RepositoryRecord, linkUUID uuid.UUID) *Executable {
	return &Executable{
		UUID:             linkUUID,
		RepositoryRecord: record,
		Symbols:          nil,
		Data:             make(map[SectionType][]byte),
		Debug:            nil,
	}
}

// ReadExecutable loads an Executable from path.
func ReadExecutable(path string) (*Executable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var e Executable
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decoding executable %q: %w", path, err)
	}
	return &e, nil
}

// Write persists e to path, overwriting any existing content.
func (e *Executable) Write(path string) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding executable: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
