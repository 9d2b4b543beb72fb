package catalog

// Source is the synthetic location name for a file's external origin (not
// replicated at any VM or datacenter yet) — see §4.6 "If from SOURCE".
const Source = "SOURCE"

const million = 1e6

// TransferTimeShared returns size divided by the transfer rate of the
// slowest of the destination datacenter's storage volumes (§4.6 SHARED).
// With no storage volumes configured the transfer is free — the file is
// already logically available everywhere in the datacenter once staged in,
// so transfer time is zero after STAGE_IN (§8 scenario 5).
func TransferTimeShared(file FileItem, storageRates []float64) float64 {
	slowest := 0.0
	for _, r := range storageRates {
		if r > 0 && (slowest == 0 || r < slowest) {
			slowest = r
		}
	}
	if slowest <= 0 {
		return 0
	}
	return float64(file.Size) / million / slowest
}

// TransferTimeLocal returns the per-file transfer time under the LOCAL
// catalog (§4.6 LOCAL):
//   - 0 if dstVMID already holds a replica.
//   - min(src_vm.bw, dst_vm.bw) for a replica on another VM of the same
//     datacenter, taking the fastest replica if more than one exists.
//   - dst_vm.bw for a replica whose location is catalog.Source.
//
// bwForVM looks up a known VM id's bandwidth; it returns false for unknown
// ids (including Source, which the caller must not pass to it).
func TransferTimeLocal(file FileItem, dstVMID string, dstBW float64, locations []string, bwForVM func(vmID string) (float64, bool)) float64 {
	for _, loc := range locations {
		if loc == dstVMID {
			return 0
		}
	}

	maxBW := 0.0
	for _, loc := range locations {
		var bw float64
		if loc == Source {
			bw = dstBW
		} else if srcBW, ok := bwForVM(loc); ok {
			bw = srcBW
			if dstBW < bw {
				bw = dstBW
			}
		} else {
			continue
		}
		if bw > maxBW {
			maxBW = bw
		}
	}
	if maxBW <= 0 {
		return 0
	}
	return float64(file.Size) / million / maxBW
}
