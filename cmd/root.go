// cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/config"
	"github.com/workflowsim-go/workflowsim/sim/dax"
	"github.com/workflowsim-go/workflowsim/sim/datacenter"
	"github.com/workflowsim-go/workflowsim/sim/failure"
	"github.com/workflowsim-go/workflowsim/sim/metrics"
	"github.com/workflowsim-go/workflowsim/sim/resource"
	"github.com/workflowsim-go/workflowsim/sim/workflow"
)

var (
	configPath    string
	daxPath       string
	vmNum         int
	vmMIPS        float64
	vmPEs         int
	logLevel      string
	seed          int64
	schedAlgo     string
	planAlgo      string
	costPerSecond float64
	costPerBW     float64
)

var rootCmd = &cobra.Command{
	Use:   "workflowsim",
	Short: "Discrete-event simulator for scientific workflow execution",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workflow simulation against a DAX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		params, err := loadParameters()
		if err != nil {
			return err
		}
		if err := params.Valid(); err != nil {
			return err
		}

		logrus.Infof("starting simulation: vmNum=%d scheduling=%s planning=%s seed=%d",
			params.VMNum, params.SchedulingAlgorithm, params.PlanningAlgorithm, params.Seed)

		report, err := runSimulation(params)
		if err != nil {
			return err
		}
		report.Print()
		logrus.Info("simulation complete")
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration and DAX file without running the kernel",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParameters()
		if err != nil {
			return err
		}
		if err := params.Valid(); err != nil {
			return err
		}
		for _, path := range params.DAXFiles() {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("validate: open %s: %w", path, err)
			}
			tasks, err := dax.Parse(f, params.RuntimeScale)
			f.Close()
			if err != nil {
				return fmt.Errorf("validate: parse %s: %w", path, err)
			}
			fmt.Printf("%s: %d tasks\n", path, len(tasks))
		}
		fmt.Println("configuration valid")
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML parameters file (overrides other flags where set)")
	rootCmd.PersistentFlags().StringVar(&daxPath, "dax", "", "path to a DAX workflow file")
	rootCmd.PersistentFlags().IntVar(&vmNum, "vm-num", 1, "number of VMs created by the broker")
	rootCmd.PersistentFlags().Float64Var(&vmMIPS, "vm-mips", 1000, "MIPS per VM PE")
	rootCmd.PersistentFlags().IntVar(&vmPEs, "vm-pes", 1, "PEs per VM")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "master RNG seed")
	rootCmd.PersistentFlags().StringVar(&schedAlgo, "scheduling", string(config.STATIC), "scheduling algorithm (MAXMIN, MINMIN, MCT, DATA, STATIC, FCFS, ROUNDROBIN)")
	rootCmd.PersistentFlags().StringVar(&planAlgo, "planning", string(config.PlanningHEFT), "planning algorithm (INVALID, RANDOM, HEFT, DHEFT)")
	rootCmd.PersistentFlags().Float64Var(&costPerSecond, "cost-per-second", 0, "execution cost per second of VM time")
	rootCmd.PersistentFlags().Float64Var(&costPerBW, "cost-per-bw", 0, "cost per bit of file transfer")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

// loadParameters builds a Parameters record from --config if given,
// otherwise from the individual flags layered over config.Default().
func loadParameters() (*config.Parameters, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	p := config.Default()
	p.VMNum = vmNum
	p.DAXPath = daxPath
	p.Seed = seed
	p.SchedulingAlgorithm = config.SchedulingAlgorithm(strings.ToUpper(schedAlgo))
	p.PlanningAlgorithm = config.PlanningAlgorithm(strings.ToUpper(planAlgo))
	return p, nil
}

// runSimulation wires the discrete-event kernel, one datacenter hosting
// params.VMNum identical VMs, and the four workflow-pipeline entities
// (Planner -> Clustering Engine -> Workflow Engine -> Scheduler), then
// runs it to completion and computes the output metrics.
func runSimulation(params *config.Parameters) (metrics.Report, error) {
	daxFiles := params.DAXFiles()
	if len(daxFiles) == 0 {
		return metrics.Report{}, fmt.Errorf("cmd: no DAX file configured")
	}

	var tasks []*workflow.Task
	for _, path := range daxFiles {
		f, err := os.Open(path)
		if err != nil {
			return metrics.Report{}, fmt.Errorf("cmd: open %s: %w", path, err)
		}
		parsed, err := dax.Parse(f, params.RuntimeScale)
		f.Close()
		if err != nil {
			return metrics.Report{}, fmt.Errorf("cmd: parse %s: %w", path, err)
		}
		tasks = append(tasks, parsed...)
	}

	k := sim.NewKernel()
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(params.Seed))

	var pes []*resource.PE
	for i := 0; i < vmPEs; i++ {
		pes = append(pes, resource.NewPE(i, vmMIPS))
	}
	host := resource.NewHost(0, pes, 1<<34, 1<<20, 1<<34)
	policy := datacenter.NewSimpleAllocationPolicy([]*resource.Host{host})

	var cat catalog.Catalog
	if params.ReplicaCatalog.FileSystem == config.FileSystemLocal {
		cat = catalog.NewLocalCatalog()
	} else {
		cat = catalog.NewSharedCatalog()
	}

	characteristics := datacenter.DefaultCharacteristics()
	characteristics.CostPerSecond = costPerSecond
	characteristics.CostPerBW = costPerBW

	dcID := sim.EntityID(0)
	dc := datacenter.New(dcID, "dc0", []*resource.Host{host}, characteristics, policy, cat, k)
	k.Register(dc)

	// Resolve the configured per-second/per-bit rates onto every VM —
	// datacenter-level rates when costModel is DATACENTER, the same flags
	// directly otherwise (§4.3 "attach resource cost parameters to the job").
	vms := make([]*resource.VM, 0, params.VMNum)
	for i := 0; i < params.VMNum; i++ {
		vm := resource.NewVM(fmt.Sprintf("vm%d", i), "", vmMIPS, vmPEs, 1<<20, 1<<20, 1<<20)
		if params.CostModel == config.CostModelDatacenter {
			vm.CostPerSecond = characteristics.CostPerSecond
			vm.CostPerBW = characteristics.CostPerBW
		} else {
			vm.CostPerSecond = costPerSecond
			vm.CostPerBW = costPerBW
		}
		vms = append(vms, vm)
	}

	schedulerID := sim.EntityID(1)
	engineID := sim.EntityID(2)
	clusteringID := sim.EntityID(3)
	plannerID := sim.EntityID(4)

	overheadRNG := rng.ForSubsystem(sim.SubsystemOverhead)
	wedDelay, err := failure.NewDistributionFromSpec(params.OverheadParams.WEDDelay, overheadRNG)
	if err != nil {
		return metrics.Report{}, err
	}
	queueDelay, err := failure.NewDistributionFromSpec(params.OverheadParams.QueueDelay, overheadRNG)
	if err != nil {
		return metrics.Report{}, err
	}
	postDelay, err := failure.NewDistributionFromSpec(params.OverheadParams.PostDelay, overheadRNG)
	if err != nil {
		return metrics.Report{}, err
	}

	generator, err := newFailureGenerator(params, rng)
	if err != nil {
		return metrics.Report{}, err
	}
	reclustering := newReclustering(params)

	scheduler := workflow.NewScheduler(schedulerID, []workflow.BrokerDatacenter{{DC: dc, ID: dcID}}, vms, params.SchedulingAlgorithm, engineID, queueDelay, postDelay, generator, k)
	k.Register(scheduler)

	engine := workflow.NewEngine(engineID, schedulerID, params.OverheadParams.WEDInterval, wedDelay, reclustering, k)
	k.Register(engine)

	clustering := workflow.NewClusteringEngine(clusteringID, engineID, k)
	k.Register(clustering)

	planner := workflow.NewPlanner(plannerID, tasks, vms, params.PlanningAlgorithm, clusteringID, k)
	k.Register(planner)

	k.Send(plannerID, plannerID, 0, sim.TagStartSimulation, nil)
	if err := k.Run(); err != nil {
		return metrics.Report{}, err
	}

	return metrics.Compute(engine.Jobs(), vms, params), nil
}

// newFailureGenerator builds the Generator that, on every job return, may
// mark tasks (and the job) FAILED against a distribution drawn from the
// failure RNG subsystem, using the mode/family/params configured in
// params.FailureParams (§4.7).
func newFailureGenerator(params *config.Parameters, rng *sim.PartitionedRNG) (*failure.Generator, error) {
	mode, err := parseFailureMode(params.FailureParams.Mode)
	if err != nil {
		return nil, err
	}
	spec := params.FailureParams.Distribution
	if spec.Family == "" {
		spec = config.DistributionSpec{Family: "weibull", Params: []float64{1.0, 1.0}}
	}
	if _, err := failure.NewDistributionFromSpec(spec, rng.ForSubsystem(sim.SubsystemFailure)); err != nil {
		return nil, fmt.Errorf("cmd: failure distribution: %w", err)
	}
	return failure.NewGenerator(mode, func() failure.Distribution {
		dist, _ := failure.NewDistributionFromSpec(spec, rng.ForSubsystem(sim.SubsystemFailure))
		return dist
	}), nil
}

// parseFailureMode maps the configured keyword onto a failure.Mode, with
// ModeTask (the default) for an empty value; an unrecognized value is an
// error.
func parseFailureMode(mode string) (failure.Mode, error) {
	switch strings.ToUpper(mode) {
	case "", "TASK":
		return failure.ModeTask, nil
	case "VM":
		return failure.ModeVM, nil
	case "JOB":
		return failure.ModeJob, nil
	case "ALL":
		return failure.ModeAll, nil
	default:
		return 0, fmt.Errorf("cmd: unrecognized failure mode %q", mode)
	}
}

// newReclustering maps the configured clustering method keyword onto a
// Reclustering policy (§4.7); an unrecognized method falls back to NOOP.
func newReclustering(params *config.Parameters) failure.Reclustering {
	switch strings.ToUpper(params.ClusteringParams.Method) {
	case "SELECTIVE":
		return failure.SelectiveReclustering{}
	case "BLOCK":
		return failure.BlockReclustering{}
	case "VERTICAL":
		return failure.VerticalReclustering{Monitor: failure.NewFailureMonitor()}
	default:
		return failure.NOOPReclustering{}
	}
}
