package ordsched

import (
	"encoding/json"
	"fmt"
)

// FlowVariant discriminates the Flow implementation carried by a Node:
// a string discriminator alongside a typed Go interface.
type FlowVariant string

const (
	FlowVariantScheduler  FlowVariant = "scheduler"
	FlowVariantFeeder     FlowVariant = "feeder"
	FlowVariantWorkerPool FlowVariant = "workerpool"
	FlowVariantQueue      FlowVariant = "queue"
)

// Flow describes how a Node's children relate to it. Leaf nodes (a
// single worker, a queue) carry a nil Flow.
type Flow interface {
	Variant() FlowVariant
}

// FlowKey provides type-safe extraction of a Flow implementation from a
// Node.
type FlowKey[T Flow] struct {
	variant FlowVariant
}

// Variant returns the flow type this key extracts.
func (k FlowKey[T]) Variant() FlowVariant { return k.variant }

// From extracts the typed Flow from a Node.
func (FlowKey[T]) From(node Node) (T, bool) {
	var zero T
	if node.Flow == nil {
		return zero, false
	}
	if flow, ok := node.Flow.(T); ok {
		return flow, true
	}
	return zero, false
}

// Pre-defined FlowKeys for ordsched's node types.
var (
	SchedulerKey  = FlowKey[SchedulerFlow]{variant: FlowVariantScheduler}
	WorkerPoolKey = FlowKey[WorkerPoolFlow]{variant: FlowVariantWorkerPool}
)

// SchedulerFlow is the root node's Flow: the scheduler's feeder slot and
// its worker pool. The input and output queues are represented as
// metadata on the scheduler node itself rather than as Schema children,
// since they carry no nested processing steps of their own.
type SchedulerFlow struct {
	Feeder Node `json:"feeder"`
	Pool   Node `json:"pool"`
}

// Variant implements Flow.
func (SchedulerFlow) Variant() FlowVariant { return FlowVariantScheduler }

// WorkerPoolFlow lists the pool's current workers as leaf nodes.
type WorkerPoolFlow struct {
	Workers []Node `json:"workers"`
}

// Variant implements Flow.
func (WorkerPoolFlow) Variant() FlowVariant { return FlowVariantWorkerPool }

// Node is one element of a scheduler's schema tree.
type Node struct {
	Identity Identity
	Type     string
	Flow     Flow
	Metadata map[string]any
}

type nodeJSON struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type"`
	Flow        Flow           `json:"flow,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler, flattening Identity into plain
// id/name/description fields.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		ID:          n.Identity.ID().String(),
		Name:        n.Identity.Name(),
		Description: n.Identity.Description(),
		Type:        n.Type,
		Flow:        n.Flow,
		Metadata:    n.Metadata,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The Identity's UUID is
// regenerated on unmarshal, and Flow is not reconstructed — schemas are
// built from a live scheduler, not parsed back into one.
func (n *Node) UnmarshalJSON(data []byte) error {
	var j nodeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	n.Identity = NewIdentity(j.Name, j.Description)
	n.Type = j.Type
	n.Metadata = j.Metadata
	return nil
}

// Schema wraps a scheduler's root Node and provides traversal utilities.
type Schema struct {
	Root Node `json:"root"`
}

// Walk traverses the schema depth-first, pre-order.
func (s Schema) Walk(fn func(Node)) {
	walkNode(s.Root, fn)
}

func walkNode(node Node, fn func(Node)) {
	fn(node)
	if node.Flow == nil {
		return
	}
	switch f := node.Flow.(type) {
	case SchedulerFlow:
		walkNode(f.Feeder, fn)
		walkNode(f.Pool, fn)
	case WorkerPoolFlow:
		for _, w := range f.Workers {
			walkNode(w, fn)
		}
	}
}

// Find returns the first node matching predicate, or nil if none match.
func (s Schema) Find(predicate func(Node) bool) *Node {
	var result *Node
	s.Walk(func(node Node) {
		if result == nil && predicate(node) {
			n := node
			result = &n
		}
	})
	return result
}

// FindByName returns the first node with the given name, or nil.
func (s Schema) FindByName(name string) *Node {
	return s.Find(func(n Node) bool { return n.Identity.Name() == name })
}

// FindByType returns every node of the given type.
func (s Schema) FindByType(nodeType string) []Node {
	var results []Node
	s.Walk(func(node Node) {
		if node.Type == nodeType {
			results = append(results, node)
		}
	})
	return results
}

// Count returns the total number of nodes in the schema.
func (s Schema) Count() int {
	count := 0
	s.Walk(func(Node) { count++ })
	return count
}

// Schema builds a point-in-time schema tree of this scheduler: the
// scheduler node, its feeder slot, and its worker pool with one leaf
// node per currently idle worker. Like GetWorkers, the worker listing is
// only a complete picture between sessions.
func (s *QueueScheduler[Input, Output]) Schema() Schema {
	workers := s.pool.Snapshot()
	workerNodes := make([]Node, len(workers))
	for i, w := range workers {
		workerNodes[i] = Node{
			Identity: NewIdentity(fmt.Sprintf("worker-%d", w.ID), ""),
			Type:     "worker",
		}
	}

	feederNode := Node{
		Identity: NewIdentity(s.identity.Name()+".feeder", "drains the session Generator"),
		Type:     "feeder",
	}

	poolNode := Node{
		Identity: NewIdentity(s.identity.Name()+".pool", "worker pool"),
		Type:     "workerpool",
		Flow:     WorkerPoolFlow{Workers: workerNodes},
		Metadata: map[string]any{"size": s.pool.Size()},
	}

	s.mu.Lock()
	inputQ, outputQ := s.input, s.output
	s.mu.Unlock()

	meta := map[string]any{}
	if inputQ != nil {
		meta["input_queue_len"] = inputQ.Len()
	}
	if outputQ != nil {
		meta["output_queue_len"] = outputQ.Len()
	}

	return Schema{Root: Node{
		Identity: s.identity,
		Type:     "scheduler",
		Flow: SchedulerFlow{
			Feeder: feederNode,
			Pool:   poolNode,
		},
		Metadata: meta,
	}}
}
