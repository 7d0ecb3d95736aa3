// Package commands implements the aton CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/teranos/aton/config"
	"github.com/teranos/aton/errors"
)

// readInput reads the input document from the named file, or from stdin
// when no argument (or "-") is given. The returned name feeds format
// detection; it is empty for stdin.
func readInput(args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, errors.Wrap(err, "failed to read stdin")
		}
		return "", data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to read %s", args[0])
	}
	return args[0], data, nil
}

// writeOutput writes text to the named file, or to stdout when path is
// empty or "-". A trailing newline is added either way.
func writeOutput(path, text string) error {
	if path == "" || path == "-" {
		fmt.Println(text)
		return nil
	}

	if err := os.WriteFile(path, []byte(text+"\n"), config.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
