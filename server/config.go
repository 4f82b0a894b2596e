package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ashware/chomsky/server/dao"
	"github.com/ashware/chomsky/server/dao/inmem"
	"github.com/ashware/chomsky/server/dao/sqlite"
)

// DBType is the type of a database connection.
type DBType string

func (dbt DBType) String() string {
	return string(dbt)
}

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

// ParseDBType parses a string found in a config file into a DBType.
func ParseDBType(s string) (DBType, error) {
	switch strings.ToLower(s) {
	case DatabaseSQLite.String():
		return DatabaseSQLite, nil
	case DatabaseInMemory.String():
		return DatabaseInMemory, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// Database contains configuration settings for connecting to a persistence
// layer.
type Database struct {
	// Type is the type of database the config refers to. It also determines
	// which of its other fields are valid.
	Type DBType

	// DataDir is the path on disk to a directory to use to store data in.
	// This is only applicable for the SQLite DB type.
	DataDir string
}

// Connect performs all logic needed to connect to the configured DB and
// initialize the store for use.
func (db Database) Connect() (dao.Store, error) {
	switch db.Type {
	case DatabaseInMemory:
		return inmem.NewDatastore(), nil
	case DatabaseSQLite:
		err := os.MkdirAll(db.DataDir, 0770)
		if err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}

		store, err := sqlite.NewDatastore(db.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite: %w", err)
		}

		return store, nil
	case DatabaseNone:
		return nil, fmt.Errorf("cannot connect to 'none' DB")
	default:
		return nil, fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// Validate returns an error if the Database does not have the correct fields
// set.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("DataDir not set to path")
		}
		return nil
	case DatabaseNone:
		return fmt.Errorf("'none' DB is not valid")
	default:
		return fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// Config contains all parameters used to configure the operation of a
// Server.
type Config struct {

	// Address is the interface address to listen on.
	Address string

	// Port is the TCP port to listen on.
	Port int

	// DB is the configuration to use for connecting to the database. If not
	// provided, it will be set to a configuration for using an in-memory
	// persistence layer.
	DB Database
}

// tomlConfig is the on-disk shape of a server configuration file.
type tomlConfig struct {
	Address string `toml:"address"`
	Port    int    `toml:"port"`
	DB      struct {
		Type    string `toml:"type"`
		DataDir string `toml:"dir"`
	} `toml:"db"`
}

// LoadConfigFile reads a server configuration from a TOML file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var unmarshaled tomlConfig
	if err := toml.Unmarshal(data, &unmarshaled); err != nil {
		return Config{}, fmt.Errorf("bad config file: %w", err)
	}

	cfg := Config{
		Address: unmarshaled.Address,
		Port:    unmarshaled.Port,
	}
	if unmarshaled.DB.Type != "" {
		cfg.DB.Type, err = ParseDBType(unmarshaled.DB.Type)
		if err != nil {
			return Config{}, fmt.Errorf("db: %w", err)
		}
		cfg.DB.DataDir = unmarshaled.DB.DataDir
	}

	return cfg, nil
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.Address == "" {
		newCFG.Address = "localhost"
	}
	if newCFG.Port == 0 {
		newCFG.Port = 8180
	}
	if newCFG.DB.Type == DatabaseNone {
		newCFG.DB = Database{Type: DatabaseInMemory}
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set.
// Empty and unset values are considered invalid; if defaults are intended to
// be used, call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port: %d is not a valid TCP port", cfg.Port)
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	return nil
}
