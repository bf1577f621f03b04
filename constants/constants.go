package constants

import (
	"os"
)

// Environment variables read by the config layer.
const (
	EnvMode          = "ENV"
	EnvLogLevel      = "GRIDNAV_LOG_LEVEL"
	EnvMaxExpansions = "GRIDNAV_MAX_EXPANSIONS"
	EnvTimeout       = "GRIDNAV_TIMEOUT"
	EnvColor         = "GRIDNAV_COLOR"
)

const ModeServer = "SERVER"

var (
	// DEVELOPMENT selects console logging and colored maps.
	DEVELOPMENT bool
	LOG_LEVEL   string
)

func Init() {
	InitFrom(os.Getenv)
}

func InitFrom(getenv func(string) string) {
	if getenv(EnvMode) == ModeServer {
		DEVELOPMENT = false
		LOG_LEVEL = "info"
	} else {
		DEVELOPMENT = true
		LOG_LEVEL = "debug"
	}
}
