package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

func TestRunSuite(t *testing.T) {
	cfg := submissionConfig(t)
	cfg.SuiteDir = t.TempDir()

	load := func(_ *contract.Config, dir string) (*Benchmark, error) {
		switch dir {
		case "suite/passing":
			return &Benchmark{
				Name:     "passing",
				Registry: mustRegistry(t, Component{Name: "all", Weight: 1.0, Check: staticCheck(90, "")}),
			}, nil
		case "suite/failing":
			return &Benchmark{
				Name:     "failing",
				Registry: mustRegistry(t, Component{Name: "all", Weight: 1.0, Check: staticCheck(40, "")}),
			}, nil
		default:
			return nil, contract.ConfigurationErrorf("no %s found in %s", schema.DefinitionFileName, dir)
		}
	}

	batch, err := RunSuite(context.Background(), cfg, []string{"suite/passing", "suite/failing", "suite/broken"}, load)
	require.NoError(t, err)

	assert.NotEmpty(t, batch.RunID)
	assert.Equal(t, cfg.SubmissionDir, batch.Submission)
	require.Len(t, batch.Results, 3)

	assert.Equal(t, "passing", batch.Results[0].Benchmark)
	assert.True(t, batch.Results[0].Report.Passed)
	assert.True(t, strings.HasPrefix(batch.Results[0].RunID, batch.RunID))

	assert.Equal(t, "failing", batch.Results[1].Benchmark)
	assert.False(t, batch.Results[1].Report.Passed)

	assert.Equal(t, "broken", batch.Results[2].Benchmark)
	assert.Contains(t, batch.Results[2].Error, "suite/broken")

	assert.Equal(t, 1, batch.PassedCount())
	assert.False(t, batch.AllPassed())
}

func TestRunSuiteEmpty(t *testing.T) {
	cfg := submissionConfig(t)

	batch, err := RunSuite(context.Background(), cfg, nil, nil)
	assert.Nil(t, batch)
	assert.True(t, contract.IsConfigurationError(err))
}

func TestRunSuiteValidationFailure(t *testing.T) {
	cfg := submissionConfig(t)

	load := func(_ *contract.Config, _ string) (*Benchmark, error) {
		return &Benchmark{
			Name:     "misweighted",
			Registry: mustRegistry(t, Component{Name: "all", Weight: 0.5, Check: staticCheck(0, "")}),
		}, nil
	}

	batch, err := RunSuite(context.Background(), cfg, []string{"suite/misweighted"}, load)
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)
	assert.Equal(t, "misweighted", batch.Results[0].Benchmark)
	assert.Contains(t, batch.Results[0].Error, "weights")
	assert.Equal(t, 0, batch.PassedCount())
}
