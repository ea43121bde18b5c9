package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/pwcheck/internal/wordlist"
)

// ReadInputs reads one password per line from r. Blank lines are
// skipped and other lines are kept byte for byte. Each input is
// labelled "<name>:<line>".
func ReadInputs(ctx context.Context, r io.Reader, name string) ([]Input, error) {
	var inputs []Input
	err := wordlist.Each(ctx, r, func(n int, line string) error {
		if line == "" {
			return nil
		}
		inputs = append(inputs, Input{
			Source:   fmt.Sprintf("%s:%d", name, n),
			Password: line,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read passwords from %s: %w", name, err)
	}
	return inputs, nil
}

// ReadInputsFile opens path and reads it with ReadInputs.
func ReadInputsFile(ctx context.Context, path string) ([]Input, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open password file: %w", err)
	}
	defer f.Close()

	return ReadInputs(ctx, f, path)
}
