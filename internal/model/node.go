package model

import "time"

const (
	DefaultNodeStatus  = "offline"
	DefaultNodeAddress = "0.0.0.0"
	DefaultNodePort    = 8001
	DefaultNodeRole    = "secondary"
)

type ResourceMetrics struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
	Disk   float64 `json:"disk"`
}

type ClusterNode struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	IPAddress   string          `json:"ipAddress"`
	Port        int             `json:"port"`
	Role        string          `json:"role"`
	Resources   ResourceMetrics `json:"resources"`
	Connections []string        `json:"connections"`
}

// Clone returns a copy that shares no memory with n.
func (n *ClusterNode) Clone() *ClusterNode {
	if n == nil {
		return nil
	}
	c := *n
	c.Connections = append(make([]string, 0, len(n.Connections)), n.Connections...)
	return &c
}

// HasConnection reports whether id is in the node's adjacency list.
func (n *ClusterNode) HasConnection(id string) bool {
	for _, c := range n.Connections {
		if c == id {
			return true
		}
	}
	return false
}

// NodeInput carries optional fields; nil means "not provided".
type NodeInput struct {
	Name        *string          `json:"name"`
	Status      *string          `json:"status"`
	IPAddress   *string          `json:"ipAddress"`
	Port        *int             `json:"port"`
	Role        *string          `json:"role"`
	Resources   *ResourceMetrics `json:"resources"`
	Connections *[]string        `json:"connections"`
}

type NodeEventType string

const (
	NodeAdded   NodeEventType = "added"
	NodeUpdated NodeEventType = "updated"
	NodeRemoved NodeEventType = "removed"
	NodeStatus  NodeEventType = "status"
)

// NodeEvent describes one committed node mutation. Seq increases by one per
// event in the order the writes were applied.
type NodeEvent struct {
	Seq    uint64        `json:"seq"`
	Type   NodeEventType `json:"type"`
	NodeID string        `json:"nodeId"`
	Node   *ClusterNode  `json:"node,omitempty"`
	Actor  string        `json:"actor"`
	At     time.Time     `json:"at"`
}
