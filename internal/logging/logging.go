// Package logging configures the campaign logger and console banners.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogFile is appended alongside the console output.
const LogFile = "evm_ink.log"

// Setup creates the process logger: colored console output plus an appended
// log file, mirroring the console.
func Setup() (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	f, err := os.OpenFile(LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", LogFile, err)
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, f))

	return logger, nil
}

const banner = `
███████╗██╗   ██╗███╗   ███╗    ██╗███╗   ██╗██╗  ██╗
██╔════╝██║   ██║████╗ ████║    ██║████╗  ██║██║ ██╔╝
█████╗  ██║   ██║██╔████╔██║    ██║██╔██╗ ██║█████╔╝
██╔══╝  ╚██╗ ██╔╝██║╚██╔╝██║    ██║██║╚██╗██║██╔═██╗
███████╗ ╚████╔╝ ██║ ╚═╝ ██║    ██║██║ ╚████║██║  ██╗
╚══════╝  ╚═══╝  ╚═╝     ╚═╝    ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝
`

// PrintBanner logs the startup banner.
func PrintBanner(logger logrus.FieldLogger) {
	for _, line := range strings.Split(banner, "\n") {
		if line != "" {
			logger.Info(line)
		}
	}
}

const ruleWidth = 104

// RoundBanner logs a horizontal rule, the centered text, and a closing rule.
// Used once per dispatched batch group.
func RoundBanner(logger logrus.FieldLogger, text string) {
	rule := strings.Repeat("=", ruleWidth)
	logger.Info(rule)
	logger.Info(center(text, ruleWidth))
	logger.Info(rule)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
