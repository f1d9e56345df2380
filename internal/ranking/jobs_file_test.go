package ranking

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ishmatch/internal/match"
)

func TestParseJobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		ids     []match.ID
		wantErr bool
	}{
		{
			name: "array",
			data: `[{"id": 1, "region_id": 3}, {"id": "b", "district_id": 140}]`,
			ids:  []match.ID{"1", "b"},
		},
		{
			name: "items object",
			data: `{"items": [{"id": 12345678901, "salary_min": "2500000"}]}`,
			ids:  []match.ID{"12345678901"},
		},
		{name: "null", data: `null`},
		{name: "object without items", data: `{"jobs": []}`, wantErr: true},
		{name: "scalar", data: `42`, wantErr: true},
		{name: "broken", data: `[{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jobs, err := ParseJobs([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			got := make([]match.ID, 0, len(jobs))
			for _, job := range jobs {
				got = append(got, job.ID)
			}
			if len(tt.ids) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.ids, got)
		})
	}
}

func TestLoadJobs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 7, "salary_min": 3000000, "experience": "1-3 yil"}]`), 0o644))

	jobs, err := LoadJobs(path)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.NotNil(t, jobs[0].SalaryMin)
	assert.Equal(t, int64(3_000_000), *jobs[0].SalaryMin)
	assert.Equal(t, "1-3 yil", jobs[0].Experience)

	_, err = LoadJobs(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
