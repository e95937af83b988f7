package wahis

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Store keeps downloaded report pages as flat files in the output
// directory, one `<report_id>.html` per report. Files double as the
// download cache: a report that already has a file is never refetched.
type Store struct {
	dir string
}

func NewStore(dir string) (Store, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return Store{}, err
	}
	return Store{dir: dir}, nil
}

func (s Store) Dir() string {
	return s.dir
}

func (s Store) Path(reportID string) string {
	return filepath.Join(s.dir, reportID+".html")
}

func (s Store) Has(reportID string) bool {
	_, err := os.Stat(s.Path(reportID))
	return err == nil
}

func (s Store) Put(reportID string, body []byte) error {
	return os.WriteFile(s.Path(reportID), body, 0644)
}

// Glob returns the stored documents matching the pattern, sorted so
// batch runs are deterministic.
func (s Store) Glob(pattern string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

var digitsRegex = regexp.MustCompile(`[0-9]+`)

// ReportIDFromPath recovers the report id from a stored document path:
// the first run of digits in the file name.
func ReportIDFromPath(path string) string {
	return digitsRegex.FindString(filepath.Base(path))
}
