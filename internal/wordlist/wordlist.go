package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrResourceNotFound is returned when the wordlist path does not name
	// a readable regular file.
	ErrResourceNotFound = errors.New("wordlist not found")

	// ErrScanFailed is returned when reading fails partway through the file.
	ErrScanFailed = errors.New("wordlist scan failed")
)

// checkEvery is how many lines are read between context checks.
const checkEvery = 4096

// Contains reports whether password appears as a whole line in the file
// at path.
//
// Trailing "\n" characters are removed from password and trailing
// "\r" and "\n" characters from each line before comparing, so files with
// Unix or Windows line endings behave the same. The file is streamed, so
// its size does not matter, and it is decoded leniently: a UTF-8 or
// UTF-16 byte-order mark is honoured and invalid UTF-8 sequences in a
// line are dropped instead of failing the scan. Valid characters,
// U+FFFD included, are compared as they are.
func Contains(ctx context.Context, path, password string) (bool, error) {
	f, err := open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return scan(ctx, f, strings.TrimRight(password, "\n"))
}

func open(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrResourceNotFound, path)
	}
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceNotFound, path, err)
	}
	return f, nil
}

var errFound = errors.New("found")

func scan(ctx context.Context, r io.Reader, target string) (bool, error) {
	err := Each(ctx, transform.NewReader(r, decoder()), func(_ int, line string) error {
		if strings.ToValidUTF8(line, "") == target {
			return errFound
		}
		return nil
	})
	switch {
	case errors.Is(err, errFound):
		return true, nil
	case err != nil:
		return false, err
	default:
		return false, nil
	}
}

// Each calls fn with the 1-based number and text of every line in r.
// Lines are passed on byte for byte, minus trailing "\r" and "\n".
// Iteration stops at the first error returned by fn, and that error is
// returned unchanged.
func Each(ctx context.Context, r io.Reader, fn func(n int, line string) error) error {
	br := bufio.NewReader(r)

	for n := 1; ; n++ {
		if n%checkEvery == 1 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if ferr := fn(n, strings.TrimRight(line, "\r\n")); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanFailed, err)
		}
	}
}

// decoder strips a leading BOM, switching to UTF-16 when one says so.
// Other input passes through unchanged.
func decoder() transform.Transformer {
	return unicode.BOMOverride(transform.Nop)
}
