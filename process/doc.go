// Package process provides the runtime representation of step executions:
// the ProcessInstance, its status state machine with append-only history,
// and the concurrent Process Store that computes dependency readiness
// against the Data Store.
package process
