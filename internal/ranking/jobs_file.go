package ranking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/ishmatch/internal/match"
)

// LoadJobs reads jobs from a JSON file holding either an array of job
// records or an object with an "items" array.
func LoadJobs(path string) ([]*match.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseJobs(data)
}

func ParseJobs(data []byte) ([]*match.Job, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse jobs: %w", err)
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		list, ok := v["items"].([]any)
		if !ok {
			return nil, fmt.Errorf("parse jobs: object without an items array")
		}
		items = list
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("parse jobs: unexpected %T", raw)
	}

	return match.DecodeJobs(items)
}
