package team

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed data/team.json
var embeddedSeed []byte

// LoadSeed reads the seed records from path, or the embedded team.json when path is empty.
func LoadSeed(path string) ([]User, error) {
	raw := embeddedSeed
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		raw = b
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]User, error) {
	users := make([]User, 0)
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return users, nil
}
