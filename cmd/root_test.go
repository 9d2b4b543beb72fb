package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/config"
	"github.com/workflowsim-go/workflowsim/sim/failure"
)

func TestRunCmd_DefaultSchedulingAlgorithm_IsStatic(t *testing.T) {
	// GIVEN the run command with its registered flags
	flag := rootCmd.PersistentFlags().Lookup("scheduling")

	// WHEN we check the default value
	// THEN it must match config.Default()'s scheduling algorithm
	assert.NotNil(t, flag, "scheduling flag must be registered")
	assert.Equal(t, string(config.STATIC), flag.DefValue)
}

func TestRunCmd_VMNumFlag_DefaultsToOne(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("vm-num")
	assert.NotNil(t, flag, "vm-num flag must be registered")
	assert.Equal(t, "1", flag.DefValue)
}

func TestLoadParameters_FlagsOverrideDefaults(t *testing.T) {
	// GIVEN flag-backed globals set as if parsed from the command line
	oldVMNum, oldDax, oldSeed, oldSched, oldPlan := vmNum, daxPath, seed, schedAlgo, planAlgo
	t.Cleanup(func() {
		vmNum, daxPath, seed, schedAlgo, planAlgo = oldVMNum, oldDax, oldSeed, oldSched, oldPlan
		configPath = ""
	})
	vmNum = 4
	daxPath = "/tmp/workflow.xml"
	seed = 42
	schedAlgo = "minmin"
	planAlgo = "heft"
	configPath = ""

	// WHEN loadParameters builds a Parameters record
	params, err := loadParameters()

	// THEN it layers the flags over config.Default() rather than replacing it
	require.NoError(t, err)
	assert.Equal(t, 4, params.VMNum)
	assert.Equal(t, "/tmp/workflow.xml", params.DAXPath)
	assert.Equal(t, int64(42), params.Seed)
	assert.Equal(t, config.MINMIN, params.SchedulingAlgorithm)
	assert.Equal(t, config.PlanningHEFT, params.PlanningAlgorithm)
	assert.Equal(t, 1.0, params.RuntimeScale, "fields untouched by flags keep config.Default()'s value")
}

func TestValidateCmd_ParsesConfiguredDAXFile(t *testing.T) {
	// GIVEN a minimal two-job DAX file on disk
	dir := t.TempDir()
	daxFile := filepath.Join(dir, "two-job.xml")
	const sample = `<?xml version="1.0"?>
<adag>
  <job id="ID00000" name="stage" runtime="1.0"></job>
  <job id="ID00001" name="compute" runtime="2.0"></job>
  <child ref="ID00001">
    <parent ref="ID00000"/>
  </child>
</adag>`
	require.NoError(t, os.WriteFile(daxFile, []byte(sample), 0o644))

	oldDax, oldConfig := daxPath, configPath
	t.Cleanup(func() { daxPath, configPath = oldDax, oldConfig })
	daxPath = daxFile
	configPath = ""

	// WHEN validate's RunE runs against the configured path
	err := validateCmd.RunE(validateCmd, nil)

	// THEN it parses without error (the DAX file is well formed and
	// resolvable through loadParameters/DAXFiles)
	assert.NoError(t, err)
}

func TestValidateCmd_MissingDAXFileReturnsError(t *testing.T) {
	oldDax, oldConfig := daxPath, configPath
	t.Cleanup(func() { daxPath, configPath = oldDax, oldConfig })
	daxPath = filepath.Join(t.TempDir(), "does-not-exist.xml")
	configPath = ""

	err := validateCmd.RunE(validateCmd, nil)

	assert.Error(t, err)
}

func TestParseFailureMode_RecognizesAllFourKeywords(t *testing.T) {
	cases := []struct {
		in   string
		want failure.Mode
	}{
		{"", failure.ModeTask},
		{"task", failure.ModeTask},
		{"VM", failure.ModeVM},
		{"job", failure.ModeJob},
		{"ALL", failure.ModeAll},
	}
	for _, c := range cases {
		got, err := parseFailureMode(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseFailureMode_RejectsUnrecognizedKeyword(t *testing.T) {
	_, err := parseFailureMode("BOGUS")
	assert.Error(t, err)
}

func TestNewFailureGenerator_UsesConfiguredDistribution(t *testing.T) {
	// GIVEN a config requesting a gamma failure distribution under JOB mode
	params := config.Default()
	params.FailureParams = config.FailureParams{
		Mode:         "JOB",
		Distribution: config.DistributionSpec{Family: "gamma", Params: []float64{2.0, 1.0}},
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1))

	// WHEN the generator is built
	gen, err := newFailureGenerator(params, rng)

	// THEN it succeeds and returns a usable Generator
	require.NoError(t, err)
	require.NotNil(t, gen)
}

func TestNewFailureGenerator_RejectsBadDistributionSpec(t *testing.T) {
	params := config.Default()
	params.FailureParams.Distribution = config.DistributionSpec{Family: "lognormal", Params: []float64{1.0}}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1))

	_, err := newFailureGenerator(params, rng)

	assert.Error(t, err)
}
