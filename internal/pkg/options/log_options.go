package options

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/kiosk404/ponder/pkg/logger"
)

// LogOptions configures pkg/logger.
type LogOptions struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
	JSON  bool   `json:"json" mapstructure:"json"`
}

func NewLogOptions() *LogOptions {
	return &LogOptions{Level: "warn"}
}

func (o *LogOptions) Validate() []error {
	if _, err := logrus.ParseLevel(o.Level); err != nil {
		return []error{fmt.Errorf("log.level: %w", err)}
	}
	return nil
}

func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Log level: debug, info, warn or error.")
	fs.StringVar(&o.File, "log.file", o.File, "Write logs to this file instead of stderr.")
	fs.BoolVar(&o.JSON, "log.json", o.JSON, "Emit logs as JSON.")
}

// Apply configures the process-wide logger.
func (o *LogOptions) Apply() error {
	if o.File != "" {
		if err := logger.InitLog(o.File); err != nil {
			return err
		}
	}
	logger.SetJSON(o.JSON)
	return logger.SetLevel(o.Level)
}
