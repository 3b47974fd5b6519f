package lib

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/units"
)

/* This file implements logic for 'user controlled' global configurations of each module of the custody node */

const (
	// FILE NAMES in the 'data directory'
	ConfigFilePath  = "config.json"  // the file path for the node configuration
	GenesisFilePath = "genesis.json" // the file path for the genesis state (committee roster and policy)
)

// Config is the structure of the user configuration options for a custody node
type Config struct {
	MainConfig   // main options spanning over all modules
	RPCConfig    // rpc API options
	StoreConfig  // persistence options
	EngineConfig // custody engine options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:   DefaultMainConfig(),
		RPCConfig:    DefaultRPCConfig(),
		StoreConfig:  DefaultStoreConfig(),
		EngineConfig: DefaultEngineConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel string `json:"logLevel"` // any level includes the levels above it: debug < info < warning < error
}

// DefaultMainConfig() sets log level to 'info'
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel: "info", // everything but debug is the default
	}
}

// GetLogLevel() parses the log string in the config file into a LogLevel Enum
func (m *MainConfig) GetLogLevel() int32 {
	switch {
	case strings.Contains(strings.ToLower(m.LogLevel), "deb"):
		return DebugLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "inf"):
		return InfoLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "war"):
		return WarnLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "err"):
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// RPC CONFIG BELOW

type RPCConfig struct {
	RPCPort         string `json:"rpcPort"`         // the port where the query rpc server is hosted
	AdminPort       string `json:"adminPort"`       // the port where the admin (mutating) rpc server is hosted
	RPCUrl          string `json:"rpcURL"`          // the url where the query rpc server is hosted
	AdminRPCUrl     string `json:"adminRPCUrl"`     // the url where the admin rpc server is hosted
	TimeoutS        int    `json:"timeoutS"`        // the rpc request timeout in seconds
	MaxRequestBytes uint64 `json:"maxRequestBytes"` // max bytes of a single rpc request body
}

// DefaultRPCConfig() sets rpc urls to localhost and sets rpc and admin ports to [50002-50003]
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		RPCPort:         "50002",                  // the rpc is served on localhost:50002
		AdminPort:       "50003",                  // the admin rpc is served on localhost:50003
		RPCUrl:          "http://localhost:50002", // use a local rpc by default
		AdminRPCUrl:     "http://localhost:50003", // use a local admin rpc by default
		TimeoutS:        3,                        // the rpc timeout is 3 seconds
		MaxRequestBytes: uint64(units.MB),         // 1 MB max request body
	}
}

// STORE CONFIG BELOW

// StoreConfig is user configurations for the key value database
type StoreConfig struct {
	DataDirPath string `json:"dataDirPath"` // path of the designated folder where the application stores its data
	DBName      string `json:"dbName"`      // name of the database
	InMemory    bool   `json:"inMemory"`    // non-disk database, only for testing
}

// DefaultDataDirPath() is $USERHOME/.custodia
func DefaultDataDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(home, ".custodia")
}

// DefaultStoreConfig() returns the developer recommended store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataDirPath: DefaultDataDirPath(), // use the default data dir path
		DBName:      "custodia",           // 'custodia' database name
		InMemory:    false,                // persist to disk, not memory
	}
}

// ENGINE CONFIG BELOW

// EngineConfig is user configurations for the custody engine
type EngineConfig struct {
	ProposalExpiryBlocks uint64 `json:"proposalExpiryBlocks"` // fallback approval window when genesis omits one
}

// DefaultEngineConfig() returns the developer recommended engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ProposalExpiryBlocks: 100, // proposals outlive their creation by 100 versions
	}
}

// WriteToFile() saves the Config object to a JSON file
func (c Config) WriteToFile(filepath string) error {
	// convert the config to indented 'pretty' json bytes
	jsonBytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	// write the config.json file to the data directory
	return os.WriteFile(filepath, jsonBytes, os.ModePerm)
}

// NewConfigFromFile() populates a Config object from a JSON file
func NewConfigFromFile(filepath string) (Config, error) {
	fileBytes, err := os.ReadFile(filepath)
	if err != nil {
		return Config{}, err
	}
	// define the default config to fill in any blanks in the file
	c := DefaultConfig()
	if err = json.Unmarshal(fileBytes, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// InitializeDataDirectory() ensures the data directory exists and holds a config and genesis file
func InitializeDataDirectory(dataDirPath string, log LoggerI) (c Config, err error) {
	if err = os.MkdirAll(dataDirPath, os.ModePerm); err != nil {
		return
	}
	configFilePath := filepath.Join(dataDirPath, ConfigFilePath)
	if _, err = os.Stat(configFilePath); os.IsNotExist(err) {
		log.Infof("Creating %s file", configFilePath)
		c = DefaultConfig()
		c.DataDirPath = dataDirPath
		if err = c.WriteToFile(configFilePath); err != nil {
			return
		}
	}
	c, err = NewConfigFromFile(configFilePath)
	if err != nil {
		return
	}
	c.DataDirPath = dataDirPath
	return
}
