package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

func flagArgs() []string {
	return os.Args[1:]
}

// parseFlags parses the daemon flags from args.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-r remote store address
//	-d SQLite DSN
//	-records bbolt record store path
//	-c/-config json file path with configs
//	-token bearer token for the remote store
//	-request-timeout remote request timeout (e.g. "30s")
//	-max-attempts push/pull attempts per cycle
//	-base-backoff first retry wait (e.g. "1s")
//	-workers concurrent pushes
//	-resolver conflict resolver name
//	-sync-interval background sync interval (e.g. "1h")
//	-cleanup-interval background cleanup interval (e.g. "24h")
//	-log-file rotating log file
func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("syncd", flag.ContinueOnError)

	var (
		serverAddress   NetAddress
		remoteAddress   string
		databaseDSN     string
		recordsPath     string
		jsonConfigPath  string
		token           string
		requestTimeout  time.Duration
		maxAttempts     int
		baseBackoff     time.Duration
		workers         int
		resolverName    string
		syncInterval    time.Duration
		cleanupInterval time.Duration
		logFile         string
	)

	fs.Var(&serverAddress, "a", "Control API address host:port")
	fs.StringVar(&remoteAddress, "r", "", "Remote store address")
	fs.StringVar(&databaseDSN, "d", "", "SQLite DSN")
	fs.StringVar(&recordsPath, "records", "", "Record store path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&token, "token", "", "Remote store bearer token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g. 30s)")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "Push/pull attempts per cycle")
	fs.DurationVar(&baseBackoff, "base-backoff", 0, "First retry wait (e.g. 1s)")
	fs.IntVar(&workers, "workers", 0, "Concurrent pushes")
	fs.StringVar(&resolverName, "resolver", "", "Conflict resolver (automatic, newest, quantity, price)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g. 1h)")
	fs.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Background cleanup interval (e.g. 24h)")
	fs.StringVar(&logFile, "log-file", "", "Rotating log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &Config{
		Storage: Storage{
			DB:      DB{DSN: databaseDSN},
			Records: Records{Path: recordsPath},
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
			Token:          token,
		},
		Sync: Sync{
			MaxAttempts: maxAttempts,
			BaseBackoff: baseBackoff,
			Workers:     workers,
			Resolver:    resolverName,
		},
		Scheduler: Scheduler{
			SyncInterval:    syncInterval,
			CleanupInterval: cleanupInterval,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Log: Log{
			File: logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
