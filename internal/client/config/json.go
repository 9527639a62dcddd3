package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/bookreview/internal/flagx"
	"github.com/dmitrijs2005/bookreview/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the timeout can be written as "30s" or as integer
// nanoseconds. After parsing, values are copied into the runtime Config.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file whose
// path comes from the -c/-config flags. With no path given, nothing is
// loaded. Read or unmarshal errors panic; config problems should stop
// the program before any command runs.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
}
