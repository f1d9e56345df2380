package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Excluded is the content of the exclude file: jobs the user has already
// dealt with.
type Excluded struct {
	Items []*ExcludedJob
}

type ExcludedJob struct {
	ID         string
	URL        string
	Employer   string
	ExcludedAt time.Time
}

// LoadExcluded reads an exclude file. A missing or empty file is an empty list.
func LoadExcluded(path string) (*Excluded, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Excluded{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Excluded{}, nil
	}

	var excluded Excluded
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &excluded, nil
}

// Append adds jobs that are not in the list yet.
func (x *Excluded) Append(s *Excluded) {
	seen := make(map[string]struct{}, len(x.Items))
	for _, item := range x.Items {
		seen[item.ID] = struct{}{}
	}

	for _, item := range s.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		x.Items = append(x.Items, item)
	}
}

func (x *Excluded) IDs() []string {
	ids := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (x *Excluded) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(x)
}
