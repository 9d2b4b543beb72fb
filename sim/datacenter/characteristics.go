package datacenter

// Characteristics is the static description a Datacenter hands back on a
// resource-characteristics inquiry (§3 "Datacenter" / §4.3).
type Characteristics struct {
	Architecture string
	OS           string
	VMM          string
	TimeZone     float64

	CostPerSecond   float64
	CostPerMemoryMB float64
	CostPerStorGB   float64
	CostPerBW       float64
}

// DefaultCharacteristics returns characteristics with every cost field
// zero; callers set the cost fields they need on the returned value.
func DefaultCharacteristics() Characteristics {
	return Characteristics{
		Architecture: "x86",
		OS:           "Linux",
		VMM:          "sim",
		TimeZone:     0,
	}
}
