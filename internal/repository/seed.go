package repository

import (
	"time"

	"cluster-dashboard-backend/internal/model"
)

// DemoAccount is a seed user before its password is hashed.
type DemoAccount struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Role      model.Role
	CreatedAt time.Time
}

func DemoAccounts() []DemoAccount {
	return []DemoAccount{
		{ID: "user1", Username: "admin", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "user2", Username: "user", Email: "user@example.com", Password: "user123", Role: model.RoleUser, CreatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "user3", Username: "viewer", Email: "viewer@example.com", Password: "viewer123", Role: model.RoleViewer, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func DemoNodes() []model.ClusterNode {
	node := func(id, name, status, ip, role string, cpu, mem, disk float64, conns ...string) model.ClusterNode {
		return model.ClusterNode{
			ID:          id,
			Name:        name,
			Status:      status,
			IPAddress:   ip,
			Port:        model.DefaultNodePort,
			Role:        role,
			Resources:   model.ResourceMetrics{CPU: cpu, Memory: mem, Disk: disk},
			Connections: conns,
		}
	}

	return []model.ClusterNode{
		node("node1", "Node-01", "online", "192.168.1.101", "primary", 45.2, 62.8, 37.5, "node2", "node3", "node5"),
		node("node2", "Node-02", "online", "192.168.1.102", "secondary", 28.7, 51.3, 42.1, "node1", "node4"),
		node("node3", "Node-03", "warning", "192.168.1.103", "secondary", 87.5, 76.4, 55.2, "node1", "node4", "node5"),
		node("node4", "Node-04", "online", "192.168.1.104", "secondary", 32.1, 48.9, 28.7, "node2", "node3", "node6"),
		node("node5", "Node-05", "online", "192.168.1.105", "secondary", 41.3, 37.2, 30.8, "node1", "node3", "node6"),
		node("node6", "Node-06", "offline", "192.168.1.106", "secondary", 0, 0, 23.5, "node4", "node5"),
		node("node7", "Node-07", "offline", "192.168.1.107", "secondary", 0, 0, 23.5, "node4", "node5"),
		node("node8", "Node-08", "offline", "192.168.1.108", "secondary", 0, 0, 23.5, "node4", "node5"),
	}
}
