package schema

import "cluster-dashboard-backend/internal/model"

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func mapArg(args map[string]interface{}, name string) map[string]interface{} {
	m, _ := args[name].(map[string]interface{})
	return m
}

func floatValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// nodeInputFromArgs maps a coerced ClusterNodeInput. Absent and null fields
// stay nil so the repository treats them as not provided.
func nodeInputFromArgs(raw interface{}) model.NodeInput {
	var in model.NodeInput
	m, ok := raw.(map[string]interface{})
	if !ok {
		return in
	}

	if v, ok := m["name"].(string); ok {
		in.Name = &v
	}
	if v, ok := m["status"].(string); ok {
		in.Status = &v
	}
	if v, ok := m["ipAddress"].(string); ok {
		in.IPAddress = &v
	}
	if v, ok := m["port"].(int); ok {
		in.Port = &v
	}
	if v, ok := m["role"].(string); ok {
		in.Role = &v
	}
	if v, ok := m["resources"].(map[string]interface{}); ok {
		in.Resources = &model.ResourceMetrics{
			CPU:    floatValue(v["cpu"]),
			Memory: floatValue(v["memory"]),
			Disk:   floatValue(v["disk"]),
		}
	}
	if v, ok := m["connections"].([]interface{}); ok {
		conns := make([]string, 0, len(v))
		for _, c := range v {
			if id, ok := c.(string); ok {
				conns = append(conns, id)
			}
		}
		in.Connections = &conns
	}
	return in
}
