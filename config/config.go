/*
 * config.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config loads the YAML configuration used by atomstruct: the
//structural categorization heuristics, ring perception defaults, the session
//store and logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Categories holds the empirical constants of the Main/Ligand/Ions/Solvent
// partition. The defaults are the values the partition has always used.
type Categories struct {
	SmallSolventMaxAtoms  int `yaml:"small_solvent_max_atoms"`  //groups smaller than this with a solvent name are solvent
	SolventMaxGroupAtoms  int `yaml:"solvent_max_group_atoms"`  //largest group considered as a candidate solvent
	BestSolventMinCount   int `yaml:"best_solvent_min_count"`   //occurrences needed to call a residue type solvent
	IonFragmentMaxHeavy   int `yaml:"ion_fragment_max_heavy"`   //co-residue fragments with fewer heavy atoms join an ion
	LigandSizeRatio       int `yaml:"ligand_size_ratio"`        //ligands are smaller than 1/ratio of the largest group
	LigandMaxAtoms        int `yaml:"ligand_max_atoms"`         //cap on the ligand size cutoff
	LigandMaxResidues     int `yaml:"ligand_max_residues"`      //ligands have fewer residues than this
	LongChainMinResidues  int `yaml:"long_chain_min_residues"`  //chains this long are never ligand
}

// Rings holds the defaults used by the CLI when asking for rings.
type Rings struct {
	CrossResidues    bool `yaml:"cross_residues"`
	AllSizeThreshold int  `yaml:"all_size_threshold"`
}

// Store configures the badger session store.
type Store struct {
	Path             string `yaml:"path"`
	InMemory         bool   `yaml:"in_memory"`
	SyncWrites       bool   `yaml:"sync_writes"`
	CompressionLevel int    `yaml:"compression_level"` //1 (fastest) to 4 (best)
}

// Logging configures the CLI logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Config is the whole configuration file.
type Config struct {
	Categories Categories `yaml:"categories"`
	Rings      Rings      `yaml:"rings"`
	Store      Store      `yaml:"store"`
	Logging    Logging    `yaml:"logging"`
}

// DefaultCategories returns the standard categorization constants.
func DefaultCategories() Categories {
	return Categories{
		SmallSolventMaxAtoms: 4,
		SolventMaxGroupAtoms: 10,
		BestSolventMinCount:  10,
		IonFragmentMaxHeavy:  5,
		LigandSizeRatio:      4,
		LigandMaxAtoms:       250,
		LigandMaxResidues:    10,
		LongChainMinResidues: 10,
	}
}

// WithDefaults returns c with every non-positive constant replaced by its
// default value.
func (c Categories) WithDefaults() Categories {
	d := DefaultCategories()
	for _, f := range []struct{ v, def *int }{
		{&c.SmallSolventMaxAtoms, &d.SmallSolventMaxAtoms},
		{&c.SolventMaxGroupAtoms, &d.SolventMaxGroupAtoms},
		{&c.BestSolventMinCount, &d.BestSolventMinCount},
		{&c.IonFragmentMaxHeavy, &d.IonFragmentMaxHeavy},
		{&c.LigandSizeRatio, &d.LigandSizeRatio},
		{&c.LigandMaxAtoms, &d.LigandMaxAtoms},
		{&c.LigandMaxResidues, &d.LigandMaxResidues},
		{&c.LongChainMinResidues, &d.LongChainMinResidues},
	} {
		if *f.v <= 0 {
			*f.v = *f.def
		}
	}
	return c
}

// Default returns the default configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return Config{
		Categories: DefaultCategories(),
		Rings:      Rings{CrossResidues: false, AllSizeThreshold: 0},
		Store: Store{
			Path:             filepath.Join(home, ".atomstruct", "sessions"),
			CompressionLevel: 3,
		},
		Logging: Logging{Level: "info"},
	}
}

// DefaultPath is where Load looks when given an empty path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".atomstruct", "atomstruct.yaml"), nil
}

// Load reads the configuration at path, creating it with the defaults if it
// doesn't exist. Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	var err error
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that the constants make sense.
func (c Config) Validate() error {
	k := c.Categories
	for name, v := range map[string]int{
		"small_solvent_max_atoms": k.SmallSolventMaxAtoms,
		"solvent_max_group_atoms": k.SolventMaxGroupAtoms,
		"best_solvent_min_count":  k.BestSolventMinCount,
		"ion_fragment_max_heavy":  k.IonFragmentMaxHeavy,
		"ligand_size_ratio":       k.LigandSizeRatio,
		"ligand_max_atoms":        k.LigandMaxAtoms,
		"ligand_max_residues":     k.LigandMaxResidues,
		"long_chain_min_residues": k.LongChainMinResidues,
	} {
		if v <= 0 {
			return fmt.Errorf("categories.%s must be positive, got %d", name, v)
		}
	}
	if c.Rings.AllSizeThreshold < 0 {
		return fmt.Errorf("rings.all_size_threshold can't be negative")
	}
	if c.Store.CompressionLevel < 1 || c.Store.CompressionLevel > 4 {
		return fmt.Errorf("store.compression_level must be between 1 and 4, got %d", c.Store.CompressionLevel)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel translates a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
