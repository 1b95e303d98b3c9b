package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application settings read from the optional config file.
type Config struct {
	// DataDir is the directory holding the CSV data files.
	DataDir string `yaml:"data_dir"`
	// Backend selects the storage adapter: "csv" or "sqlite".
	Backend string `yaml:"backend"`
	// SQLitePath is the database file used when Backend is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`
	// ReimbursableCategories lists the expense categories eligible for
	// reimbursement.
	ReimbursableCategories []string `yaml:"reimbursable_categories"`
}

func defaultConfig() Config {
	return Config{
		DataDir:                "data",
		Backend:                "csv",
		SQLitePath:             "moneystream.db",
		ReimbursableCategories: []string{"交通", "食品", "出差", "旅游"},
	}
}

// LoadConfig reads the config file, falling back to defaults when it does
// not exist. Fields missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}
