package system

import (
	"fmt"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for CLI output.
// It prints to stderr with timestamps enabled for better UX.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
})

// SetLevel sets the level of Logger from a name such as "debug" or "warn".
// An empty name leaves the level unchanged.
func SetLevel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lvl, err := clog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	Logger.SetLevel(lvl)
	return nil
}
