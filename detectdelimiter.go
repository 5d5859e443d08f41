package smartchip

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

var fallbackDelimiters = []rune{',', '\t', ';', '|'}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	var head bytes.Buffer

	d := detector.New()
	delimiters := d.DetectDelimiter(io.TeeReader(r, &head), '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	// The detector wants the delimiter on every sampled line. Files with
	// ragged or blank lines can defeat that, so fall back to the most common
	// candidate on the first line.
	line, _ := bufio.NewReader(&head).ReadString('\n')
	best, bestCount := ',', 0
	for _, c := range fallbackDelimiters {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}

	return best
}
