package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValidModuloDAX(t *testing.T) {
	p := Default()
	p.DAXPath = "workflow.xml"
	assert.NoError(t, p.Valid())
}

func TestValid_RejectsMissingDAX(t *testing.T) {
	p := Default()
	assert.Error(t, p.Valid())
}

func TestValid_RejectsBadSchedulingAlgorithm(t *testing.T) {
	p := Default()
	p.DAXPath = "workflow.xml"
	p.SchedulingAlgorithm = "BOGUS"
	assert.Error(t, p.Valid())
}

func TestDAXFiles_PrefersPlural(t *testing.T) {
	p := Default()
	p.DAXPath = "single.xml"
	p.DAXPaths = []string{"a.xml", "b.xml"}
	assert.Equal(t, []string{"a.xml", "b.xml"}, p.DAXFiles())
}

func TestDAXFiles_FallsBackToSingular(t *testing.T) {
	p := Default()
	p.DAXPath = "single.xml"
	assert.Equal(t, []string{"single.xml"}, p.DAXFiles())
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	err := os.WriteFile(path, []byte("vmNum: 4\ndaxPath: wf.xml\n"), 0o644)
	require.NoError(t, err)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, p.VMNum)
	assert.Equal(t, "wf.xml", p.DAXPath)
	assert.Equal(t, STATIC, p.SchedulingAlgorithm) // default preserved
}

func TestDefault_FailureParamsDefaultsToTaskModeWeibull(t *testing.T) {
	p := Default()
	assert.Equal(t, "TASK", p.FailureParams.Mode)
	assert.Equal(t, "weibull", p.FailureParams.Distribution.Family)
	assert.Equal(t, []float64{1.0, 1.0}, p.FailureParams.Distribution.Params)
}

func TestLoad_MergesFailureParamsOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	yaml := "daxPath: wf.xml\nfailureParams:\n  mode: VM\n  distribution:\n    family: gamma\n    params: [2.0, 3.0]\n"
	err := os.WriteFile(path, []byte(yaml), 0o644)
	require.NoError(t, err)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "VM", p.FailureParams.Mode)
	assert.Equal(t, "gamma", p.FailureParams.Distribution.Family)
	assert.Equal(t, []float64{2.0, 3.0}, p.FailureParams.Distribution.Params)
}

func TestEnums_Valid(t *testing.T) {
	assert.NoError(t, MAXMIN.Valid())
	assert.NoError(t, PlanningHEFT.Valid())
	assert.NoError(t, CostModelVM.Valid())
	assert.NoError(t, FileSystemLocal.Valid())
	assert.NoError(t, ReclusterBlock.Valid())
	assert.Error(t, SchedulingAlgorithm("NOPE").Valid())
}
