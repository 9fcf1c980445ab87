// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"net/url"
	"os"
	"reflect"
	"strconv"

	"github.com/absmach/kvcache/codec"
	redisclient "github.com/absmach/kvcache/internal/clients/redis"
	"github.com/absmach/kvcache/pkg/errors"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
)

type config struct {
	RedisURL  string `toml:"redis_url"`
	Prefix    string `toml:"prefix"`
	Codec     string `toml:"codec"`
	RawOutput string `toml:"raw_output"`
}

// Readable by all user groups but writeable by the user only.
const filePermission = 0o644

var (
	errReadFail            = errors.New("failed to read config file")
	errNoKey               = errors.New("no such key")
	errUnsupportedKeyValue = errors.New("unsupported data type for key")
	errWritingConfig       = errors.New("error in writing the updated config to file")
	errInvalidURL          = errors.New("invalid url")
	errNoConfigPath        = errors.New("config path is not set")
)

func read(file string) (config, error) {
	c := config{}
	data, err := os.Open(file)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}
	defer data.Close()

	buf, err := io.ReadAll(data)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}

	if err := toml.Unmarshal(buf, &c); err != nil {
		return config{}, err
	}

	return c, nil
}

func write(file string, c config) error {
	buf, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	if err = os.WriteFile(file, buf, filePermission); err != nil {
		return errors.Wrap(errWritingConfig, err)
	}

	return nil
}

// ParseConfig overrides the connection settings with the values found in
// the config file. Without a config path the settings are returned
// unchanged. A missing file is created from the given settings.
func ParseConfig(cfg redisclient.Config) (redisclient.Config, error) {
	if ConfigPath == "" {
		return cfg, nil
	}

	_, err := os.Stat(ConfigPath)
	switch {
	// If the file does not exist, create it with the current values.
	case os.IsNotExist(err):
		defaultConfig := config{
			RedisURL:  cfg.URL,
			Prefix:    cfg.Prefix,
			Codec:     cfg.Codec,
			RawOutput: strconv.FormatBool(RawOutput),
		}
		if err := write(ConfigPath, defaultConfig); err != nil {
			return cfg, err
		}
	case err != nil:
		return cfg, err
	}

	c, err := read(ConfigPath)
	if err != nil {
		return cfg, err
	}

	if c.RedisURL != "" {
		cfg.URL = c.RedisURL
	}
	if c.Prefix != "" {
		cfg.Prefix = c.Prefix
	}
	if c.Codec != "" {
		cfg.Codec = c.Codec
	}
	if c.RawOutput != "" {
		rawOutput, err := strconv.ParseBool(c.RawOutput)
		if err != nil {
			return cfg, err
		}
		RawOutput = rawOutput
	}

	return cfg, nil
}

// NewConfigCmd returns the command storing settings in the local TOML file.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <key> <value>",
		Short: "CLI local config",
		Long: "Local param storage to prevent repetitive passing of connection settings\n" +
			"Usage:\n" +
			"\tkvcache-cli --config ./kvcache.toml config redis_url redis://cache:6379/1\n" +
			"\tkvcache-cli --config ./kvcache.toml config codec msgpack\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := setConfigValue(args[0], args[1]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	}
}

func setConfigValue(key, value string) error {
	if ConfigPath == "" {
		return errNoConfigPath
	}

	c := config{}
	if _, err := os.Stat(ConfigPath); err == nil {
		if c, err = read(ConfigPath); err != nil {
			return err
		}
	}

	switch key {
	case "redis_url":
		u, err := url.Parse(value)
		if err != nil {
			return errors.Wrap(errInvalidURL, err)
		}
		if u.Scheme != "redis" && u.Scheme != "rediss" && u.Scheme != "unix" {
			return errInvalidURL
		}
	case "codec":
		if _, err := codec.Parse(value); err != nil {
			return err
		}
	case "raw_output":
		if _, err := strconv.ParseBool(value); err != nil {
			return err
		}
	}

	configKeyToField := map[string]interface{}{
		"redis_url":  &c.RedisURL,
		"prefix":     &c.Prefix,
		"codec":      &c.Codec,
		"raw_output": &c.RawOutput,
	}

	fieldPtr, ok := configKeyToField[key]
	if !ok {
		return errNoKey
	}

	fieldValue := reflect.ValueOf(fieldPtr).Elem()

	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(value)
	default:
		return errUnsupportedKeyValue
	}

	return write(ConfigPath, c)
}
