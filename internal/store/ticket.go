package store

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ReadTicket loads the single UUID stored in a ticket file. Any decode
// failure, or a document that isn't a bare UUID, is returned as an
// error — callers (the linker, the garbage collector) decide whether a
// missing or malformed ticket file is fatal or recoverable.
func ReadTicket(path string) (uuid.UUID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return uuid.UUID{}, err
	}
	var id uuid.UUID
	if err := yaml.Unmarshal(data, &id); err != nil {
		return uuid.UUID{}, fmt.Errorf("ticket file %q does not contain a UUID: %w", path, err)
	}
	return id, nil
}

// WriteTicket writes id, and nothing else, to path.
func WriteTicket(path string, id uuid.UUID) error {
	data, err := yaml.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding ticket: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
