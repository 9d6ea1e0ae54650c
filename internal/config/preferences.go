package config

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/rhyrak/lecture-scheduler/internal/scheduler"
)

var prefixKey = regexp.MustCompile(`^[A-Z]{2}$`)

// ParseRoomPreferences decodes a YAML mapping of two-letter section
// prefixes to ordered floor lists:
//
//	TI: [3, 4]
//	DK: [4, 5]
func ParseRoomPreferences(in io.Reader) (map[string][]int, error) {
	prefs := map[string][]int{}
	if err := yaml.NewDecoder(in).Decode(&prefs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode room preferences: %w", err)
	}
	for key := range prefs {
		if !prefixKey.MatchString(key) {
			return nil, fmt.Errorf("room preference key %q is not a two-letter prefix", key)
		}
	}
	return prefs, nil
}

// LoadRoomPreferences reads preferences from path. An empty path yields the
// built-in table.
func LoadRoomPreferences(path string) (map[string][]int, error) {
	if path == "" {
		return scheduler.DefaultPreferences(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open room preferences: %w", err)
	}
	defer f.Close()
	return ParseRoomPreferences(f)
}
