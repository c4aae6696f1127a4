package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Profile is a language description loaded from a TOML file, e.g.:
//
//	dialect = "openttd"
//	cases = ["nom", "gen"]
//	genders = ["m", "f", "n"]
//	plural_count = 3
type Profile struct {
	Dialect     string   `toml:"dialect"`
	Cases       []string `toml:"cases"`
	Genders     []string `toml:"genders"`
	PluralCount int      `toml:"plural_count"`
}

// LoadProfile reads a language profile from path.
func LoadProfile(path string) (*Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("load language profile: %w", err)
	}
	return &p, nil
}
