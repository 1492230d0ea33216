package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig mirrors [Config] with JSON names and string durations.
type jsonConfig struct {
	Storage struct {
		DSN         string `json:"dsn"`
		RecordsPath string `json:"records_path"`
	} `json:"storage"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter"`

	Sync struct {
		MaxAttempts int      `json:"max_attempts"`
		BaseBackoff Duration `json:"base_backoff"`
		MaxBackoff  Duration `json:"max_backoff"`
		Workers     int      `json:"workers"`
		Resolver    string   `json:"resolver"`
	} `json:"sync"`

	Cache struct {
		MaxEntries int      `json:"max_entries"`
		TTL        Duration `json:"ttl"`
	} `json:"cache"`

	Scheduler struct {
		SyncInterval     Duration `json:"sync_interval"`
		CleanupInterval  Duration `json:"cleanup_interval"`
		TaskDeadline     Duration `json:"task_deadline"`
		MaxPending       int      `json:"max_pending"`
		RecheckInterval  Duration `json:"recheck_interval"`
		HistoryRetention Duration `json:"history_retention"`
	} `json:"scheduler"`

	Server struct {
		HTTPAddress string `json:"http_address"`
		APIToken    string `json:"api_token"`
	} `json:"server"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var in jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&in); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &Config{
		Storage: Storage{
			DB:      DB{DSN: in.Storage.DSN},
			Records: Records{Path: in.Storage.RecordsPath},
		},
		Adapter: Adapter{
			HTTPAddress:    in.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(in.Adapter.RequestTimeout),
			Token:          in.Adapter.Token,
		},
		Sync: Sync{
			MaxAttempts: in.Sync.MaxAttempts,
			BaseBackoff: time.Duration(in.Sync.BaseBackoff),
			MaxBackoff:  time.Duration(in.Sync.MaxBackoff),
			Workers:     in.Sync.Workers,
			Resolver:    in.Sync.Resolver,
		},
		Cache: Cache{
			MaxEntries: in.Cache.MaxEntries,
			TTL:        time.Duration(in.Cache.TTL),
		},
		Scheduler: Scheduler{
			SyncInterval:     time.Duration(in.Scheduler.SyncInterval),
			CleanupInterval:  time.Duration(in.Scheduler.CleanupInterval),
			TaskDeadline:     time.Duration(in.Scheduler.TaskDeadline),
			MaxPending:       in.Scheduler.MaxPending,
			RecheckInterval:  time.Duration(in.Scheduler.RecheckInterval),
			HistoryRetention: time.Duration(in.Scheduler.HistoryRetention),
		},
		Server: Server{
			HTTPAddress: in.Server.HTTPAddress,
			APIToken:    in.Server.APIToken,
		},
		Log: Log{
			Level: in.Log.Level,
			File:  in.Log.File,
		},
	}, nil
}

// Duration is a time.Duration that unmarshals from strings like "1h" or "30s"
// as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
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
