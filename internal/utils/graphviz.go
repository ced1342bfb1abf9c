package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrDotNotFound is returned when no Graphviz binary is on the PATH.
var ErrDotNotFound = errors.New("graphviz: dot binary not found")

func WriteFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0o644)
}

// DotTo renders pathDOT into outPath with the Graphviz binary dotBin
// (default "dot") in the given format (default "svg").
func DotTo(ctx context.Context, pathDOT, outPath, format, dotBin string) error {
	if format == "" {
		format = "svg"
	}
	if dotBin == "" {
		dotBin = "dot"
	}

	if _, err := exec.LookPath(dotBin); err != nil {
		return fmt.Errorf("%w (%q): %v", ErrDotNotFound, dotBin, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, dotBin, "-T"+format, pathDOT, "-o", outPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("graphviz: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
