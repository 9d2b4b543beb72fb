package sim

import (
	"math"
	"math/rand"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	vals1 := make([]float64, 3)
	vals2 := make([]float64, 3)

	for i := 0; i < 3; i++ {
		vals1[i] = rng1.ForSubsystem(SubsystemOverhead).Float64()
	}
	for i := 0; i < 3; i++ {
		vals2[i] = rng2.ForSubsystem(SubsystemOverhead).Float64()
	}

	for i := 0; i < 3; i++ {
		if vals1[i] != vals2[i] {
			t.Errorf("Value %d: got %v and %v, want identical", i, vals1[i], vals2[i])
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	// Draw 10 values from A's failure subsystem (should NOT affect overhead)
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemFailure).Float64()
	}

	for i := 0; i < 5; i++ {
		rngB.ForSubsystem(SubsystemOverhead).Float64()
	}

	aOverheadFirst := rngA.ForSubsystem(SubsystemOverhead).Float64()
	bOverheadSixth := rngB.ForSubsystem(SubsystemOverhead).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForSubsystem(SubsystemOverhead).Float64()

	if aOverheadFirst != expectedFirst {
		t.Errorf("A's overhead first value = %v, want %v (isolation broken)", aOverheadFirst, expectedFirst)
	}
	if bOverheadSixth == expectedFirst {
		t.Error("B's 6th overhead value equals 1st value - unexpected")
	}
}

func TestPartitionedRNG_FailureBackwardCompat(t *testing.T) {
	seed := int64(42)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	failureRNG := rng.ForSubsystem(SubsystemFailure)
	directRNG := newRandFromSeed(seed)

	for i := 0; i < 10; i++ {
		got := failureRNG.Float64()
		want := directRNG.Float64()
		if got != want {
			t.Errorf("Value %d: failure RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForSubsystem(SubsystemFailure)
	rng2 := rng.ForSubsystem(SubsystemFailure)

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_ZeroSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(0))

	failure := rng.ForSubsystem(SubsystemFailure)
	overhead := rng.ForSubsystem(SubsystemOverhead)

	if failure == nil || overhead == nil {
		t.Error("ForSubsystem returned nil with zero seed")
	}

	directRNG := newRandFromSeed(0)
	if failure.Float64() != directRNG.Float64() {
		t.Error("Failure subsystem with seed 0 not matching direct RNG")
	}
}

func TestPartitionedRNG_NegativeSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64))

	failure := rng.ForSubsystem(SubsystemFailure)
	overhead := rng.ForSubsystem(SubsystemOverhead)

	if failure == nil || overhead == nil {
		t.Error("ForSubsystem returned nil with MinInt64 seed")
	}

	val := failure.Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForSubsystem(SubsystemFailure)

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "test_subsystem"
	hash1 := fnv1a64(input)
	hash2 := fnv1a64(input)

	if hash1 != hash2 {
		t.Errorf("fnv1a64(%q) not deterministic: %v != %v", input, hash1, hash2)
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	names := []string{
		SubsystemFailure,
		SubsystemOverhead,
		SubsystemVMDepth("vm-0", 0),
		SubsystemVMDepth("vm-1", 0),
		SubsystemVMDepth("vm-1", 1),
		"",
	}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

// === SubsystemVMDepth Tests ===

func TestSubsystemVMDepth(t *testing.T) {
	tests := []struct {
		vmID  string
		depth int
		want  string
	}{
		{"vm-0", 0, "vm_vm-0_depth_0"},
		{"vm-1", 2, "vm_vm-1_depth_2"},
	}

	for _, tt := range tests {
		got := SubsystemVMDepth(tt.vmID, tt.depth)
		if got != tt.want {
			t.Errorf("SubsystemVMDepth(%q, %d) = %q, want %q", tt.vmID, tt.depth, got, tt.want)
		}
	}
}

// === Helper ===

// newRandFromSeed creates a *rand.Rand with the given seed (mirrors old implementation).
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
