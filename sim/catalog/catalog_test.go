package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealInputs_ExcludesFilesProducedInSameList(t *testing.T) {
	files := []FileItem{
		{Name: "a.txt", Size: 100, Type: FileInput},
		{Name: "b.txt", Size: 200, Type: FileInput},
		{Name: "b.txt", Size: 200, Type: FileOutput},
	}
	real := RealInputs(files)
	assert.Len(t, real, 1)
	assert.Equal(t, "a.txt", real[0].Name)
}

func TestRealInputs_EmptyWhenAllLocal(t *testing.T) {
	files := []FileItem{
		{Name: "x", Size: 1, Type: FileInput},
		{Name: "x", Size: 1, Type: FileOutput},
	}
	assert.Empty(t, RealInputs(files))
}

func TestSharedCatalog_RegistersOncePerDatacenter(t *testing.T) {
	c := NewSharedCatalog()
	c.AddFile("f.dat", "dc0")
	c.AddFile("f.dat", "dc0")
	c.AddFile("f.dat", "dc1")
	assert.Len(t, c.Locations("f.dat"), 2)
	assert.True(t, c.HasFile("f.dat", "dc0"))
	assert.False(t, c.HasFile("f.dat", "dc2"))
}

func TestLocalCatalog_KeyedByVM(t *testing.T) {
	c := NewLocalCatalog()
	c.AddFile("f.dat", "vm0")
	assert.True(t, c.HasFile("f.dat", "vm0"))
	assert.False(t, c.HasFile("f.dat", "vm1"))
}

func TestTransferTimeShared_NoStorageIsFree(t *testing.T) {
	f := FileItem{Name: "f", Size: 8_000_000}
	assert.Equal(t, 0.0, TransferTimeShared(f, nil))
}

func TestTransferTimeShared_UsesSlowestVolume(t *testing.T) {
	f := FileItem{Name: "f", Size: 8_000_000}
	// the slower of the two volumes (50) sets the rate: 8 MB / 50 = 0.16.
	got := TransferTimeShared(f, []float64{100, 50})
	assert.InDelta(t, 0.16, got, 1e-9)
}

func TestTransferTimeLocal_SameVMIsFree(t *testing.T) {
	f := FileItem{Name: "f", Size: 1000}
	got := TransferTimeLocal(f, "vm0", 1000, []string{"vm0"}, func(string) (float64, bool) { return 0, false })
	assert.Equal(t, 0.0, got)
}

func TestTransferTimeLocal_AnotherVMUsesMinBandwidth(t *testing.T) {
	f := FileItem{Name: "f", Size: 8_000_000}
	bw := func(id string) (float64, bool) {
		if id == "vm1" {
			return 500, true
		}
		return 0, false
	}
	got := TransferTimeLocal(f, "vm0", 1000, []string{"vm1"}, bw)
	assert.InDelta(t, 0.016, got, 1e-9)
}

func TestTransferTimeLocal_SourceUsesDstBandwidth(t *testing.T) {
	f := FileItem{Name: "f", Size: 8_000_000}
	got := TransferTimeLocal(f, "vm0", 1000, []string{Source}, func(string) (float64, bool) { return 0, false })
	assert.InDelta(t, 0.008, got, 1e-9)
}
