package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultLogLevel       = "info"
	DefaultLogFileMaxSize = 10 // megabytes
	DefaultLogFileBackups = 3
)

var logLevels = map[string]log.Level{
	"trace": log.TraceLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

func CheckLogLevel(level string) error {
	if _, ok := logLevels[strings.ToLower(level)]; !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

// InitLogger configures the global logrus logger. When logFile is not empty,
// log lines are also appended to a size-rotated file.
func InitLogger(level string, logFile string) error {
	if level == "" {
		level = DefaultLogLevel
	}
	if err := CheckLogLevel(level); err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    DefaultLogFileMaxSize,
			MaxBackups: DefaultLogFileBackups,
		})
	}
	setupLogger(logLevels[strings.ToLower(level)], out)

	return nil
}

// InitDefaultLogger installs the default level and formatter, logging to
// stderr only. Used before the configuration is known.
func InitDefaultLogger() {
	setupLogger(logLevels[DefaultLogLevel], os.Stderr)
}

func setupLogger(level log.Level, out io.Writer) {
	log.SetLevel(level)
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		NoColors:        !term.IsTerminal(int(os.Stderr.Fd())),
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(out)
}

func SetBorderlessTable(table *tablewriter.Table) {
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetNoWhiteSpace(true)
}
