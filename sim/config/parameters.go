package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DistributionSpec names a sampling family and its parameters, used for the
// WED/queue/post delay distributions of OverheadParams. The family
// keywords (lognormal, weibull, gamma, normal) match sim/failure's
// Distribution implementations.
type DistributionSpec struct {
	Family string    `yaml:"family"`
	Params []float64 `yaml:"params"`
}

// OverheadParams holds the delay distributions and batching interval of
// §4.4's Workflow Engine / Workflow Scheduler. It has no clustering-delay
// distribution.
type OverheadParams struct {
	WEDDelay   DistributionSpec `yaml:"wedDelay"`
	QueueDelay DistributionSpec `yaml:"queueDelay"`
	PostDelay  DistributionSpec `yaml:"postDelay"`
	WEDInterval int             `yaml:"wedInterval"`
}

// ClusteringParams selects the clustering method used by the Clustering
// Engine and, where applicable, its factor.
type ClusteringParams struct {
	Method string `yaml:"method"`
	Factor int    `yaml:"factor"`
}

// ReplicaCatalogParams wraps the single FileSystem switch of §4.6.
type ReplicaCatalogParams struct {
	FileSystem FileSystemMode `yaml:"fileSystem"`
}

// FailureParams configures the failure.Generator of §4.7: Mode selects how
// the (VM id, depth) bucket key is formed (TASK/VM/JOB/ALL, default TASK),
// and Distribution is the family/params every bucket's Distribution is
// built from via failure.NewDistributionFromSpec.
type FailureParams struct {
	Mode         string           `yaml:"mode"`
	Distribution DistributionSpec `yaml:"distribution"`
}

// Parameters is the single configuration record of §6, loaded from YAML and
// overridable by CLI flags in cmd/.
type Parameters struct {
	VMNum               int                  `yaml:"vmNum"`
	DAXPath             string               `yaml:"daxPath"`
	DAXPaths            []string             `yaml:"daxPaths"`
	RuntimeScale        float64              `yaml:"runtimeScale"`
	SchedulingAlgorithm SchedulingAlgorithm  `yaml:"schedulingAlgorithm"`
	PlanningAlgorithm   PlanningAlgorithm    `yaml:"planningAlgorithm"`
	CostModel           CostModel            `yaml:"costModel"`
	Deadline            float64              `yaml:"deadline"`
	OverheadParams      OverheadParams       `yaml:"overheadParams"`
	ClusteringParams    ClusteringParams     `yaml:"clusteringParams"`
	ReplicaCatalog      ReplicaCatalogParams `yaml:"replicaCatalog"`
	FailureParams       FailureParams        `yaml:"failureParams"`
	Seed                int64                `yaml:"seed"`
}

// Default returns the parameter set the CLI falls back to absent a config
// file: one VM, STATIC scheduling, HEFT planning, datacenter cost model,
// SHARED catalog, runtime scale 1.0.
func Default() *Parameters {
	return &Parameters{
		VMNum:               1,
		RuntimeScale:        1.0,
		SchedulingAlgorithm: STATIC,
		PlanningAlgorithm:   PlanningHEFT,
		CostModel:           CostModelDatacenter,
		OverheadParams: OverheadParams{
			WEDInterval: 1,
		},
		ClusteringParams: ClusteringParams{Method: "NONE"},
		ReplicaCatalog:   ReplicaCatalogParams{FileSystem: FileSystemShared},
		FailureParams: FailureParams{
			Mode:         "TASK",
			Distribution: DistributionSpec{Family: "weibull", Params: []float64{1.0, 1.0}},
		},
	}
}

// Load reads a YAML file into a copy of Default(), so unset fields keep
// their defaults rather than zeroing out.
func Load(path string) (*Parameters, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

// Valid checks every closed-keyword field and the VM count/DAX presence
// invariants.
func (p *Parameters) Valid() error {
	if p.VMNum <= 0 {
		return fmt.Errorf("config: vmNum must be positive, got %d", p.VMNum)
	}
	if p.DAXPath == "" && len(p.DAXPaths) == 0 {
		return fmt.Errorf("config: daxPath or daxPaths is required")
	}
	if err := p.SchedulingAlgorithm.Valid(); err != nil {
		return err
	}
	if err := p.PlanningAlgorithm.Valid(); err != nil {
		return err
	}
	if err := p.CostModel.Valid(); err != nil {
		return err
	}
	if err := p.ReplicaCatalog.FileSystem.Valid(); err != nil {
		return err
	}
	return nil
}

// DAXFiles returns DAXPaths if set, else a single-element slice of DAXPath.
func (p *Parameters) DAXFiles() []string {
	if len(p.DAXPaths) > 0 {
		return p.DAXPaths
	}
	if p.DAXPath != "" {
		return []string{p.DAXPath}
	}
	return nil
}
