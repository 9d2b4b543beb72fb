// Package datacenter implements the Datacenter entity of §4.3: a named
// collection of hosts behind a VM allocation policy, dispatching the fixed
// tag set of resource-characteristics, VM lifecycle, and cloudlet lifecycle
// events. It depends only on sim, sim/resource and sim/catalog — never on
// sim/workflow — communicating with the pipeline entities through the
// narrow resource.Cloudlet and catalog.FileItem interfaces instead.
package datacenter
