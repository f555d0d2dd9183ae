package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"cluster-dashboard-backend/internal/model"
)

var ErrInvalidConnection = errors.New("invalid connection")

// NodeRepository owns the cluster-node records. Lookups that miss return
// nil (or false) without an error.
type NodeRepository interface {
	List(ctx context.Context) ([]*model.ClusterNode, error)
	Get(ctx context.Context, id string) (*model.ClusterNode, error)
	Add(ctx context.Context, input model.NodeInput) (*model.ClusterNode, error)
	Update(ctx context.Context, id string, input model.NodeInput) (*model.ClusterNode, error)
	Remove(ctx context.Context, id string) (bool, error)
	SetStatus(ctx context.Context, id, status string) (*model.ClusterNode, error)
}

// MemoryNodeRepository keeps nodes in insertion order behind a single lock.
// Every value it returns is a copy.
type MemoryNodeRepository struct {
	mu    sync.RWMutex
	nodes map[string]*model.ClusterNode
	order []string
	newID func() string
}

func NewMemoryNodeRepository() *MemoryNodeRepository {
	return &MemoryNodeRepository{
		nodes: make(map[string]*model.ClusterNode),
		newID: uuid.NewString,
	}
}

// Seed loads nodes verbatim, replacing any with the same id. Connections are
// pruned to ids present after loading.
func (r *MemoryNodeRepository) Seed(nodes []model.ClusterNode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range nodes {
		n := nodes[i].Clone()
		if _, exists := r.nodes[n.ID]; !exists {
			r.order = append(r.order, n.ID)
		}
		r.nodes[n.ID] = n
	}

	for _, n := range r.nodes {
		kept := n.Connections[:0]
		for _, c := range n.Connections {
			if _, ok := r.nodes[c]; ok && c != n.ID {
				kept = append(kept, c)
			}
		}
		n.Connections = kept
	}
}

func (r *MemoryNodeRepository) List(_ context.Context) ([]*model.ClusterNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.ClusterNode, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.nodes[id].Clone())
	}
	return out, nil
}

func (r *MemoryNodeRepository) Get(_ context.Context, id string) (*model.ClusterNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nodes[id].Clone(), nil
}

func (r *MemoryNodeRepository) Add(_ context.Context, input model.NodeInput) (*model.ClusterNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := &model.ClusterNode{
		ID:          r.newID(),
		Status:      model.DefaultNodeStatus,
		IPAddress:   model.DefaultNodeAddress,
		Port:        model.DefaultNodePort,
		Role:        model.DefaultNodeRole,
		Connections: []string{},
	}

	if input.Name != nil {
		node.Name = *input.Name
	}
	if input.Status != nil && *input.Status != "" {
		node.Status = *input.Status
	}
	if input.IPAddress != nil && *input.IPAddress != "" {
		node.IPAddress = *input.IPAddress
	}
	if input.Port != nil && *input.Port != 0 {
		node.Port = *input.Port
	}
	if input.Role != nil && *input.Role != "" {
		node.Role = *input.Role
	}
	if input.Resources != nil {
		node.Resources = *input.Resources
	}
	if input.Connections != nil {
		conns, err := r.normalizeConnections(node.ID, *input.Connections)
		if err != nil {
			return nil, err
		}
		node.Connections = conns
	}

	r.nodes[node.ID] = node
	r.order = append(r.order, node.ID)
	return node.Clone(), nil
}

func (r *MemoryNodeRepository) Update(_ context.Context, id string, input model.NodeInput) (*model.ClusterNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.nodes[id]
	if !ok {
		return nil, nil
	}

	// Build the merged record first so a rejected input leaves it untouched.
	updated := existing.Clone()
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Status != nil {
		updated.Status = *input.Status
	}
	if input.IPAddress != nil {
		updated.IPAddress = *input.IPAddress
	}
	if input.Port != nil {
		updated.Port = *input.Port
	}
	if input.Role != nil {
		updated.Role = *input.Role
	}
	if input.Resources != nil {
		updated.Resources = *input.Resources
	}
	if input.Connections != nil {
		conns, err := r.normalizeConnections(id, *input.Connections)
		if err != nil {
			return nil, err
		}
		updated.Connections = conns
	}
	updated.ID = id

	r.nodes[id] = updated
	return updated.Clone(), nil
}

// Remove deletes the node and drops its id from every other node's
// connections, so no surviving node points at it.
func (r *MemoryNodeRepository) Remove(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.nodes[id]; !ok {
		return false, nil
	}

	for _, n := range r.nodes {
		if n.ID == id || !n.HasConnection(id) {
			continue
		}
		kept := make([]string, 0, len(n.Connections)-1)
		for _, c := range n.Connections {
			if c != id {
				kept = append(kept, c)
			}
		}
		n.Connections = kept
	}

	delete(r.nodes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemoryNodeRepository) SetStatus(_ context.Context, id, status string) (*model.ClusterNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.nodes[id]
	if !ok {
		return nil, nil
	}
	n.Status = status
	return n.Clone(), nil
}

// normalizeConnections collapses duplicates and rejects self-references and
// ids that are not in the repository. Callers hold r.mu.
func (r *MemoryNodeRepository) normalizeConnections(self string, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, c := range ids {
		if c == self {
			return nil, fmt.Errorf("%w: node cannot connect to itself", ErrInvalidConnection)
		}
		if _, ok := r.nodes[c]; !ok {
			return nil, fmt.Errorf("%w: unknown node %q", ErrInvalidConnection, c)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
