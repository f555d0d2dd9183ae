// Package schema exposes the resolver router as a GraphQL API.
package schema

import (
	"context"
	"fmt"
	"reflect"

	"github.com/graphql-go/graphql"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/resolver"
)

type Schema struct {
	schema graphql.Schema
	router *resolver.Router
}

func New(router *resolver.Router) (*Schema, error) {
	s := &Schema{router: router}

	resourceMetrics := graphql.NewObject(graphql.ObjectConfig{
		Name: "ResourceMetrics",
		Fields: graphql.Fields{
			"cpu":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"memory": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"disk":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	user := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u, ok := p.Source.(*model.PublicUser); ok {
						return string(u.Role), nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	authPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(user)},
		},
	})

	clusterNode := graphql.NewObject(graphql.ObjectConfig{
		Name: "ClusterNode",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"ipAddress":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"port":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"role":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"resources":   &graphql.Field{Type: graphql.NewNonNull(resourceMetrics)},
			"connections": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
		},
	})

	resourceMetricsInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ResourceMetricsInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"cpu":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"memory": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"disk":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	// Every field is optional: add applies defaults, update merges.
	clusterNodeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ClusterNodeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"ipAddress":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"port":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"role":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"resources":   &graphql.InputObjectFieldConfig{Type: resourceMetricsInput},
			"connections": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		},
	})

	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			resolver.OpClusterNodes: &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(clusterNode))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpClusterNodes, nil)
				},
			},
			resolver.OpClusterNode: &graphql.Field{
				Type: clusterNode,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpClusterNode, model.NodeIDRequest{ID: stringArg(p.Args, "id")})
				},
			},
			resolver.OpMe: &graphql.Field{
				Type: user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpMe, nil)
				},
			},
			resolver.OpUsers: &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(user))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpUsers, nil)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			resolver.OpAddClusterNode: &graphql.Field{
				Type: graphql.NewNonNull(clusterNode),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(clusterNodeInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpAddClusterNode, nodeInputFromArgs(p.Args["input"]))
				},
			},
			resolver.OpUpdateClusterNode: &graphql.Field{
				Type: clusterNode,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(clusterNodeInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpUpdateClusterNode, model.UpdateNodeRequest{
						ID:    stringArg(p.Args, "id"),
						Input: nodeInputFromArgs(p.Args["input"]),
					})
				},
			},
			resolver.OpRemoveClusterNode: &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpRemoveClusterNode, model.NodeIDRequest{ID: stringArg(p.Args, "id")})
				},
			},
			resolver.OpUpdateNodeStatus: &graphql.Field{
				Type: clusterNode,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := model.UpdateStatusRequest{ID: stringArg(p.Args, "id")}
					if status, ok := p.Args["status"].(string); ok {
						req.Status = &status
					}
					return s.call(p.Context, resolver.OpUpdateNodeStatus, req)
				},
			},
			resolver.OpLogin: &graphql.Field{
				Type: graphql.NewNonNull(authPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := mapArg(p.Args, "input")
					return s.call(p.Context, resolver.OpLogin, model.LoginRequest{
						Username: stringArg(in, "username"),
						Password: stringArg(in, "password"),
					})
				},
			},
			resolver.OpRegister: &graphql.Field{
				Type: graphql.NewNonNull(authPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := mapArg(p.Args, "input")
					return s.call(p.Context, resolver.OpRegister, model.RegisterRequest{
						Username: stringArg(in, "username"),
						Email:    stringArg(in, "email"),
						Password: stringArg(in, "password"),
					})
				},
			},
			resolver.OpLogout: &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.call(p.Context, resolver.OpLogout, nil)
				},
			},
		},
	})

	gs, err := graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	s.schema = gs
	return s, nil
}

func (s *Schema) Execute(ctx context.Context, req model.GraphQLRequest) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

func (s *Schema) call(ctx context.Context, op string, in any) (interface{}, error) {
	out, err := s.router.Dispatch(ctx, op, in)
	if err != nil {
		return nil, err
	}
	// Typed nil pointers must reach the executor as a plain nil.
	if out == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(out); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, nil
	}
	return out, nil
}
