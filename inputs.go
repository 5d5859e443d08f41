package smartchip

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
)

// ListInputs expands path into the files to analyze. A directory yields its
// regular, non-hidden files sorted by name; a file or a gs:// path yields
// itself.
func ListInputs(path string) ([]string, error) {
	if IsGoogleStorage(path) {
		return []string{path}, nil
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var out []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		out = append(out, filepath.Join(path, entry.Name()))
	}
	sort.Strings(out)

	return out, nil
}

var compressionExts = map[string]struct{}{
	".gz": {}, ".zip": {}, ".xz": {}, ".bz2": {}, ".z": {},
}

// OutputPrefix is the path prefix that reports for input are written under:
// outDir joined with the input's base name minus its extension. A
// compression extension is removed along with the one before it.
func OutputPrefix(outDir, input string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		if _, compressed := compressionExts[strings.ToLower(ext)]; compressed {
			base = strings.TrimSuffix(base, ext)
		}
	}
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}

	return filepath.Join(outDir, base)
}
