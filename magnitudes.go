package smartchip

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/carbocation/smartchip/quantify"
)

// ReadGeneMagnitudes parses a file of "assay:coefficient" lines. Blank lines
// are skipped and surrounding whitespace is ignored. If an assay is listed
// twice, the later line wins.
func ReadGeneMagnitudes(ctx context.Context, path string, client *storage.Client) (quantify.Magnitudes, error) {
	f, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, _, err := MaybeDecompress(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	defer r.Close()

	out := make(quantify.Magnitudes)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%s line %d: Expected 'assay:coefficient' but found %q", path, lineNum, line)
		}

		coef, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}

		out[strings.TrimSpace(name)] = coef
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
