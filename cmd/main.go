package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-network/custodia/cmd/rpc"
	"github.com/custodia-network/custodia/engine"
	"github.com/custodia-network/custodia/lib"
	"github.com/custodia-network/custodia/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "custodia",
	Short: "custodia is a committee-governed custody engine",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rpc.SoftwareVersion)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the custody engine daemon",
	Run: func(cmd *cobra.Command, args []string) {
		Start()
	},
}

var (
	dataDir = ""
	client  = &rpc.Client{}
	config  = lib.Config{}
	l       = lib.LoggerI(nil)
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", lib.DefaultDataDirPath(), "custom data directory location")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(adminCmd)
	queryCmd.PersistentPreRun = connect
	adminCmd.PersistentPreRun = connect
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// connect loads the node configuration and points the RPC client at it;
// used by the query and admin subcommands, which talk to a running daemon
func connect(_ *cobra.Command, _ []string) {
	l = lib.NewDefaultLogger()
	configFilePath := filepath.Join(dataDir, lib.ConfigFilePath)
	config = lib.DefaultConfig()
	if _, err := os.Stat(configFilePath); err == nil {
		if config, err = lib.NewConfigFromFile(configFilePath); err != nil {
			l.Fatal(err.Error())
		}
	}
	client = rpc.NewClient(config.RPCUrl, config.RPCPort, config.AdminPort)
}

// Start() is the entrypoint of the daemon
func Start() {
	logger := lib.NewDefaultLogger()
	c, db := InitializeDataDirectory(dataDir, logger)
	logger = lib.NewLogger(lib.LoggerConfig{Level: c.GetLogLevel()}, c.DataDirPath)
	e := engine.New(c, db, logger)
	if err := e.NewFromGenesisFile(); err != nil {
		logger.Fatal(err.Error())
	}
	rpc.NewServer(e, c, logger).Start()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGABRT)
	s := <-stop
	if err := e.Close(); err != nil {
		logger.Error(err.Error())
	}
	logger.Infof("Exit command %s received", s)
	os.Exit(0)
}

// InitializeDataDirectory ensures the data directory carries a config file,
// a genesis file, and an openable database before the daemon boots
func InitializeDataDirectory(dataDirPath string, logger lib.LoggerI) (c lib.Config, db lib.StoreI) {
	if dataDirPath == "" {
		dataDirPath = lib.DefaultDataDirPath()
	}
	logger.Infof("Reading data directory at %s", dataDirPath)
	c, err := lib.InitializeDataDirectory(dataDirPath, logger)
	if err != nil {
		panic(err)
	}
	genesisFilePath := filepath.Join(dataDirPath, lib.GenesisFilePath)
	if _, statErr := os.Stat(genesisFilePath); errors.Is(statErr, os.ErrNotExist) {
		logger.Infof("Creating %s file", lib.GenesisFilePath)
		if gErr := engine.WriteDefaultGenesisFile(dataDirPath); gErr != nil {
			panic(gErr)
		}
	}
	db, dbErr := store.New(c, logger)
	if dbErr != nil {
		panic(dbErr)
	}
	return c, db
}
