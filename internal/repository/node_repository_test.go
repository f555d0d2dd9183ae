package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cluster-dashboard-backend/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAddAppliesDefaults(t *testing.T) {
	r := NewMemoryNodeRepository()
	ctx := context.Background()

	n, err := r.Add(ctx, model.NodeInput{Name: strPtr("N1")})
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "N1", n.Name)
	assert.Equal(t, "offline", n.Status)
	assert.Equal(t, "0.0.0.0", n.IPAddress)
	assert.Equal(t, 8001, n.Port)
	assert.Equal(t, "secondary", n.Role)
	assert.Equal(t, model.ResourceMetrics{}, n.Resources)
	assert.Empty(t, n.Connections)
	assert.NotNil(t, n.Connections)

	again, err := r.Add(ctx, model.NodeInput{Name: strPtr("N2")})
	require.NoError(t, err)
	assert.NotEqual(t, n.ID, again.ID)
}

func TestAddInputOverridesDefaults(t *testing.T) {
	r := NewMemoryNodeRepository()
	ctx := context.Background()

	peer, err := r.Add(ctx, model.NodeInput{Name: strPtr("peer")})
	require.NoError(t, err)

	conns := []string{peer.ID, peer.ID}
	n, err := r.Add(ctx, model.NodeInput{
		Name:        strPtr("N1"),
		Status:      strPtr("online"),
		IPAddress:   strPtr("10.0.0.1"),
		Port:        intPtr(9000),
		Role:        strPtr("primary"),
		Resources:   &model.ResourceMetrics{CPU: 1, Memory: 2, Disk: 3},
		Connections: &conns,
	})
	require.NoError(t, err)

	assert.Equal(t, "online", n.Status)
	assert.Equal(t, "10.0.0.1", n.IPAddress)
	assert.Equal(t, 9000, n.Port)
	assert.Equal(t, "primary", n.Role)
	assert.Equal(t, model.ResourceMetrics{CPU: 1, Memory: 2, Disk: 3}, n.Resources)
	assert.Equal(t, []string{peer.ID}, n.Connections)
}

func TestAddRejectsUnknownConnection(t *testing.T) {
	r := NewMemoryNodeRepository()
	conns := []string{"ghost"}

	_, err := r.Add(context.Background(), model.NodeInput{Name: strPtr("N1"), Connections: &conns})
	require.ErrorIs(t, err, ErrInvalidConnection)

	all, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdatePreservesUnspecifiedFields(t *testing.T) {
	r := NewMemoryNodeRepository()
	r.Seed(DemoNodes())
	ctx := context.Background()

	before, err := r.Get(ctx, "node1")
	require.NoError(t, err)

	after, err := r.Update(ctx, "node1", model.NodeInput{Status: strPtr("warning")})
	require.NoError(t, err)

	assert.Equal(t, "warning", after.Status)
	expected := before.Clone()
	expected.Status = "warning"
	assert.Equal(t, expected, after)

	stored, err := r.Get(ctx, "node1")
	require.NoError(t, err)
	assert.Equal(t, after, stored)
}

func TestUpdateMissingAndInvalid(t *testing.T) {
	r := NewMemoryNodeRepository()
	r.Seed(DemoNodes())
	ctx := context.Background()

	n, err := r.Update(ctx, "nope", model.NodeInput{Status: strPtr("online")})
	require.NoError(t, err)
	assert.Nil(t, n)

	self := []string{"node1"}
	_, err = r.Update(ctx, "node1", model.NodeInput{Name: strPtr("renamed"), Connections: &self})
	require.ErrorIs(t, err, ErrInvalidConnection)

	stored, err := r.Get(ctx, "node1")
	require.NoError(t, err)
	assert.Equal(t, "Node-01", stored.Name)
}

func TestSetStatus(t *testing.T) {
	r := NewMemoryNodeRepository()
	r.Seed(DemoNodes())
	ctx := context.Background()

	n, err := r.SetStatus(ctx, "node6", "online")
	require.NoError(t, err)
	assert.Equal(t, "online", n.Status)
	assert.Equal(t, "Node-06", n.Name)

	n, err = r.SetStatus(ctx, "missing", "online")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestReturnedNodesAreCopies(t *testing.T) {
	r := NewMemoryNodeRepository()
	r.Seed(DemoNodes())
	ctx := context.Background()

	n, err := r.Get(ctx, "node1")
	require.NoError(t, err)
	n.Connections[0] = "mutated"
	n.Name = "mutated"

	again, err := r.Get(ctx, "node1")
	require.NoError(t, err)
	assert.Equal(t, "Node-01", again.Name)
	assert.Equal(t, "node2", again.Connections[0])
}

func TestRemoveCascadesConnections(t *testing.T) {
	r := NewMemoryNodeRepository()
	r.Seed(DemoNodes())
	ctx := context.Background()

	// node2 and node3 both reference node4 among others.
	n2, _ := r.Get(ctx, "node2")
	n3, _ := r.Get(ctx, "node3")

	ok, err := r.Remove(ctx, "node4")
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := r.Get(ctx, "node4")
	require.NoError(t, err)
	assert.Nil(t, gone)

	n2After, _ := r.Get(ctx, "node2")
	n3After, _ := r.Get(ctx, "node3")
	assert.Len(t, n2After.Connections, len(n2.Connections)-1)
	assert.Len(t, n3After.Connections, len(n3.Connections)-1)

	ok, err = r.Remove(ctx, "node4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func assertNoDanglingEdges(t *testing.T, r *MemoryNodeRepository, removed map[string]bool) {
	t.Helper()
	nodes, err := r.List(context.Background())
	require.NoError(t, err)

	live := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		live[n.ID] = true
	}
	for _, n := range nodes {
		for _, c := range n.Connections {
			assert.False(t, removed[c], "node %s still references removed %s", n.ID, c)
			assert.True(t, live[c], "node %s references unknown %s", n.ID, c)
		}
	}
}

func randomGraph(rng *rand.Rand, size int) []model.ClusterNode {
	nodes := make([]model.ClusterNode, size)
	for i := range nodes {
		nodes[i] = model.ClusterNode{ID: fmt.Sprintf("n%d", i), Name: fmt.Sprintf("N%d", i)}
	}
	for i := range nodes {
		for j := range nodes {
			if i != j && rng.Intn(3) == 0 {
				nodes[i].Connections = append(nodes[i].Connections, nodes[j].ID)
			}
		}
	}
	return nodes
}

func TestRemoveEdgeConsistencyProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	for trial := 0; trial < 200; trial++ {
		size := 1 + rng.Intn(12)
		r := NewMemoryNodeRepository()
		r.Seed(randomGraph(rng, size))

		removed := make(map[string]bool)
		for _, idx := range rng.Perm(size) {
			id := fmt.Sprintf("n%d", idx)
			ok, err := r.Remove(ctx, id)
			require.NoError(t, err)
			require.True(t, ok)
			removed[id] = true

			assertNoDanglingEdges(t, r, removed)
		}

		remaining, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	r := NewMemoryNodeRepository()
	r.Seed(DemoNodes())

	_, err := r.Remove(context.Background(), "node3")
	require.NoError(t, err)

	nodes, err := r.List(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"node1", "node2", "node4", "node5", "node6", "node7", "node8"}, ids)
}
