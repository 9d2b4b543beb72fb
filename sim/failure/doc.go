// Package failure implements the failure model of §4.7: per-(VM,depth)
// inter-arrival distributions, a Generator that samples whether a task's
// execution window contains a failure, and the five Reclustering policies
// that turn a FAILED job back into replacement jobs.
package failure
