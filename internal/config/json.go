// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		Token     string `json:"token"`
		Directory string `json:"directory"`
		Action    string `json:"action"`
		Cipher    string `json:"cipher"`
		LogFile   string `json:"log_file"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress     string   `json:"address"`
		PingTimeout     Duration `json:"ping_timeout"`
		TransferTimeout Duration `json:"transfer_timeout"`
	} `json:"adapter,omitempty"`

	Archiver struct {
		Mode      string `json:"mode"`
		TarBinary string `json:"tar_binary"`
	} `json:"archiver,omitempty"`

	Transfer struct {
		ChunkSize int `json:"chunk_size"`
	} `json:"transfer,omitempty"`

	Storage struct {
		StagingDir string `json:"staging_dir"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			BinaryDataDir string `json:"binary_data_dir"`
			Backend       string `json:"backend"`
		} `json:"files,omitempty"`

		S3 struct {
			Bucket          string `json:"bucket"`
			Region          string `json:"region"`
			Endpoint        string `json:"endpoint"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			UsePathStyle    bool   `json:"use_path_style"`
		} `json:"s3,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadBytes int64    `json:"max_upload_bytes"`
	} `json:"server,omitempty"`

	Workers struct {
		StaleAfter Duration `json:"stale_after"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	s := jsonCfg.Storage
	cfg := &StructuredConfig{
		App: App{
			Token:     jsonCfg.App.Token,
			Directory: jsonCfg.App.Directory,
			Action:    jsonCfg.App.Action,
			Cipher:    jsonCfg.App.Cipher,
			LogFile:   jsonCfg.App.LogFile,
		},
		Adapter: Adapter{
			HTTPAddress:     jsonCfg.Adapter.HTTPAddress,
			PingTimeout:     time.Duration(jsonCfg.Adapter.PingTimeout),
			TransferTimeout: time.Duration(jsonCfg.Adapter.TransferTimeout),
		},
		Archiver: Archiver{
			Mode:      jsonCfg.Archiver.Mode,
			TarBinary: jsonCfg.Archiver.TarBinary,
		},
		Transfer: Transfer{ChunkSize: jsonCfg.Transfer.ChunkSize},
		Storage: Storage{
			StagingDir: s.StagingDir,
			DB:         DB{DSN: s.DB.DSN},
			Files: Files{
				BinaryDataDir: s.Files.BinaryDataDir,
				Backend:       s.Files.Backend,
			},
			S3: S3{
				Bucket:          s.S3.Bucket,
				Region:          s.S3.Region,
				Endpoint:        s.S3.Endpoint,
				AccessKeyID:     s.S3.AccessKeyID,
				SecretAccessKey: s.S3.SecretAccessKey,
				UsePathStyle:    s.S3.UsePathStyle,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadBytes: jsonCfg.Server.MaxUploadBytes,
		},
		Workers: Workers{StaleAfter: time.Duration(jsonCfg.Workers.StaleAfter)},
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h" or
// "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
