/*
Chomskyd starts a grammar analysis HTTP server.

It stores grammars submitted over its REST API and serves analysis reports
and parses over them.

Usage:

	chomskyd [flags]

The flags are:

	-v, --version
		Give the current version of chomsky and then exit.

	-c, --config FILE
		Use the provided TOML configuration file. Defaults to "chomskyd.toml"
		in the current working directory, if it exists.

	-l, --listen ADDRESS
		Override the configured listen address.

	-p, --port PORT
		Override the configured TCP port.

	-d, --db CONN
		Override the configured persistence layer: "inmem", or
		"sqlite:DATA_DIR".
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ashware/chomsky/internal/version"
	"github.com/ashware/chomsky/server"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitServerError indicates an unsuccessful program execution due to a
	// problem while running the server.
	ExitServerError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the server.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  *string = pflag.StringP("config", "c", "", "The TOML configuration file for the server")
	listenAddr  *string = pflag.StringP("listen", "l", "", "The address to listen on")
	listenPort  *int    = pflag.IntP("port", "p", 0, "The TCP port to listen on")
	dbConn      *string = pflag.StringP("db", "d", "", "The persistence layer: 'inmem' or 'sqlite:DATA_DIR'")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("chomskyd %s\n", version.Current)
		return
	}

	var cfg server.Config
	cfgPath := *configFile
	if cfgPath == "" {
		if _, err := os.Stat("chomskyd.toml"); err == nil {
			cfgPath = "chomskyd.toml"
		}
	}
	if cfgPath != "" {
		var err error
		cfg, err = server.LoadConfigFile(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	if *listenAddr != "" {
		cfg.Address = *listenAddr
	}
	if *listenPort != 0 {
		cfg.Port = *listenPort
	}
	if *dbConn != "" {
		db, err := parseDBConnString(*dbConn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		cfg.DB = db
	}

	cfg = cfg.FillDefaults()

	srv, err := server.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if err := srv.ServeForever(cfg.Address, cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitServerError
	}
}

// parseDBConnString parses a persistence connection string of the form
// "engine" or "engine:params" into a Database config.
func parseDBConnString(s string) (server.Database, error) {
	var paramStr string
	dbParts := strings.SplitN(s, ":", 2)

	if len(dbParts) == 2 {
		paramStr = strings.TrimSpace(dbParts[1])
	}

	dbEng, err := server.ParseDBType(strings.TrimSpace(dbParts[0]))
	if err != nil {
		return server.Database{}, fmt.Errorf("unsupported DB engine: %w", err)
	}

	switch dbEng {
	case server.DatabaseInMemory:
		if paramStr != "" {
			return server.Database{}, fmt.Errorf("unsupported param(s) for in-memory DB engine: %s", paramStr)
		}
		return server.Database{Type: server.DatabaseInMemory}, nil
	case server.DatabaseSQLite:
		if paramStr == "" {
			return server.Database{}, fmt.Errorf("sqlite DB engine requires path to data directory after ':'")
		}
		return server.Database{Type: server.DatabaseSQLite, DataDir: paramStr}, nil
	default:
		return server.Database{}, fmt.Errorf("unknown DB engine: %q", dbEng.String())
	}
}
