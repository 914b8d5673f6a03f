package tgformat

import (
	"log"
	"os"
)

// Logger is the package-wide logger. Composition itself never logs; only
// fallbacks at the edges (markdown lowering, the CLI) write here.
var Logger = log.New(os.Stderr, "[tgformat] ", log.LstdFlags)

// SetLogger replaces the package-wide logger.
func SetLogger(logger *log.Logger) {
	Logger = logger
}
