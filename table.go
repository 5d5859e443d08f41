// Package smartchip reads SmartChip qPCR exports and their companion files
// from local disk or Google Storage, compressed or not.
package smartchip

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/carbocation/smartchip/dataset"
)

// ReadTable loads a whole delimited file, which may be compressed and may
// live in Google Storage. The delimiter is detected from the content. Blank
// lines are skipped and rows may have differing numbers of fields.
func ReadTable(ctx context.Context, path string, client *storage.Client, hasHeader bool) (*dataset.Table, error) {
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

	// Chip exports are small; reading everything lets the delimiter be
	// detected without re-opening and re-decompressing the file.
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	records, err := parseRecords(contents)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	if hasHeader && len(records) == 0 {
		return nil, fmt.Errorf("%s: Expected a header line but the file is empty", path)
	}

	return dataset.NewTable(records, hasHeader), nil
}

func parseRecords(contents []byte) ([][]string, error) {
	rdr := csv.NewReader(bytes.NewReader(contents))
	rdr.Comma = DetermineDelimiter(bytes.NewReader(contents))
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true

	return rdr.ReadAll()
}

// CheckColumns returns an error naming the first required column that the
// table cannot resolve.
func CheckColumns(t *dataset.Table, required []string) error {
	for _, name := range required {
		if _, err := t.Column(name); err != nil {
			return err
		}
	}

	return nil
}
