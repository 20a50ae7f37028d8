// Package config reads runtime settings from the environment. There is no
// config file; an optional .env in the working directory is loaded first.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "SHEETCSV"

const (
	KeyLogFile  = "log_file"
	KeyStartDir = "start_dir"
)

const DefaultLogFile = "sheetcsv.log"

type Config struct {
	// LogFile is the append log shared by every run.
	LogFile string
	// StartDir is where the directory picker opens.
	StartDir string
}

// Load reads SHEETCSV_* variables, after merging any .env file found at
// envFile. A missing .env is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyStartDir, cwd)

	return Config{
		LogFile:  v.GetString(KeyLogFile),
		StartDir: v.GetString(KeyStartDir),
	}, nil
}
