package dnscli

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// newLogger writes through the standard logger; verbosity selects which V
// levels are printed.
func newLogger(w io.Writer, verbosity int) logr.Logger {
	std := log.New(w, "", log.LstdFlags)
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			std.Printf("%s: %s", prefix, args)
			return
		}
		std.Print(args)
	}, funcr.Options{Verbosity: verbosity})
}
