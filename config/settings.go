package config

import (
	"io/ioutil"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gridnav/astar"
	"gridnav/constants"
	"gridnav/logging"
	"gridnav/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Duration marshals as a time.ParseDuration string such as "250ms".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parse duration %q", s)
	}
	*d = Duration(parsed)
	return nil
}

type SearchSettings struct {
	MaxExpansions int      `json:"max_expansions,omitempty"`
	Timeout       Duration `json:"timeout,omitempty"`
}

type RenderSettings struct {
	Color bool `json:"color"`
}

type MetricsSettings struct {
	Textfile string `json:"textfile,omitempty"`
}

type Settings struct {
	Log     logging.Config              `json:"log"`
	Search  SearchSettings              `json:"search"`
	Render  RenderSettings              `json:"render"`
	Metrics MetricsSettings             `json:"metrics"`
	Tracing observability.TracingConfig `json:"tracing"`
}

// NewSettings returns defaults derived from the constants package; call
// constants.Init first to pick up the ENV mode.
func NewSettings() *Settings {
	return &Settings{
		Log: logging.Config{
			Level:       constants.LOG_LEVEL,
			Development: constants.DEVELOPMENT,
		},
		Render:  RenderSettings{Color: constants.DEVELOPMENT},
		Tracing: observability.DefaultTracingConfig(),
	}
}

func LoadSettings(path string) (*Settings, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read settings")
	}
	settings := NewSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrapf(err, "decode settings %s", path)
	}
	return settings, nil
}

func StoreSettings(path string, settings *Settings) error {
	if settings == nil {
		return errors.New("settings is nil")
	}
	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	return errors.Wrap(ioutil.WriteFile(path, data, 0644), "write settings")
}

// ApplyEnv overrides settings from the GRIDNAV_* variables that are set.
func (s *Settings) ApplyEnv(getenv func(string) string) error {
	if v := getenv(constants.EnvLogLevel); v != "" {
		s.Log.Level = v
	}
	if v := getenv(constants.EnvMaxExpansions); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errors.Errorf("%s must be a non-negative integer, got %q", constants.EnvMaxExpansions, v)
		}
		s.Search.MaxExpansions = n
	}
	if v := getenv(constants.EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", constants.EnvTimeout)
		}
		s.Search.Timeout = Duration(d)
	}
	if v := getenv(constants.EnvColor); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", constants.EnvColor)
		}
		s.Render.Color = b
	}
	return nil
}

// SearchOptions turns the search budget into astar options.
func (s *Settings) SearchOptions(logger *zap.Logger, recorder astar.Recorder) []astar.Option {
	options := []astar.Option{astar.WithLogger(logger)}
	if s.Search.MaxExpansions > 0 {
		options = append(options, astar.WithMaxExpansions(s.Search.MaxExpansions))
	}
	if s.Search.Timeout > 0 {
		options = append(options, astar.WithTimeout(time.Duration(s.Search.Timeout)))
	}
	if recorder != nil {
		options = append(options, astar.WithRecorder(recorder))
	}
	return options
}
