// Package config holds the single Parameters record (§6) and the closed
// keyword enums it references: scheduling/planning algorithm names, the
// cost model, the replica catalog's file-system mode, and the failure
// generator's mode/distribution.
package config
