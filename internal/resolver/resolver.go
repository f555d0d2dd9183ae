package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/pkg/events"
	"cluster-dashboard-backend/internal/pkg/identity"
	"cluster-dashboard-backend/internal/pkg/logger"
	"cluster-dashboard-backend/internal/repository"
	"cluster-dashboard-backend/internal/service"
	"cluster-dashboard-backend/pkg/utils"
)

const (
	OpClusterNodes      = "clusterNodes"
	OpClusterNode       = "clusterNode"
	OpMe                = "me"
	OpUsers             = "users"
	OpAddClusterNode    = "addClusterNode"
	OpUpdateClusterNode = "updateClusterNode"
	OpRemoveClusterNode = "removeClusterNode"
	OpUpdateNodeStatus  = "updateNodeStatus"
	OpLogin             = "login"
	OpRegister          = "register"
	OpLogout            = "logout"
)

type resolver struct {
	auth   *service.AuthService
	nodes  repository.NodeRepository
	events events.Publisher
	logger *logger.Logger
	now    func() time.Time

	// writeMu orders node writes with their events; seq is guarded by it.
	writeMu sync.Mutex
	seq     uint64
}

// New wires every API operation to its handler and requirement.
func New(auth *service.AuthService, nodes repository.NodeRepository, publisher events.Publisher, logger *logger.Logger) *Router {
	res := &resolver{auth: auth, nodes: nodes, events: publisher, logger: logger, now: time.Now}
	r := NewRouter(logger)

	Handle(r, OpClusterNodes, Authenticated, res.clusterNodes)
	Handle(r, OpClusterNode, Authenticated, res.clusterNode)
	Handle(r, OpMe, Public, res.me)
	Handle(r, OpUsers, Admin, res.users)

	Handle(r, OpAddClusterNode, Admin, res.addClusterNode)
	Handle(r, OpUpdateClusterNode, Admin, res.updateClusterNode)
	Handle(r, OpRemoveClusterNode, Admin, res.removeClusterNode)
	Handle(r, OpUpdateNodeStatus, Writer, res.updateNodeStatus)

	Handle(r, OpLogin, Public, res.login)
	Handle(r, OpRegister, Public, res.register)
	Handle(r, OpLogout, Public, res.logout)

	return r
}

func (res *resolver) clusterNodes(ctx context.Context, _ struct{}) ([]*model.ClusterNode, error) {
	return res.nodes.List(ctx)
}

func (res *resolver) clusterNode(ctx context.Context, req model.NodeIDRequest) (*model.ClusterNode, error) {
	if req.ID == "" {
		return nil, utils.NewValidationError("Node ID is required")
	}
	return res.nodes.Get(ctx, req.ID)
}

func (res *resolver) me(ctx context.Context, _ struct{}) (*model.PublicUser, error) {
	return res.auth.Me(ctx, identity.FromContext(ctx))
}

func (res *resolver) users(ctx context.Context, _ struct{}) ([]*model.PublicUser, error) {
	return res.auth.ListUsers(ctx)
}

func (res *resolver) addClusterNode(ctx context.Context, in model.NodeInput) (*model.ClusterNode, error) {
	if err := validateNodeInput(in, true); err != nil {
		return nil, err
	}

	res.writeMu.Lock()
	defer res.writeMu.Unlock()

	node, err := res.nodes.Add(ctx, in)
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	res.publish(ctx, model.NodeAdded, node.ID, node)
	return node, nil
}

func (res *resolver) updateClusterNode(ctx context.Context, req model.UpdateNodeRequest) (*model.ClusterNode, error) {
	if req.ID == "" {
		return nil, utils.NewValidationError("Node ID is required")
	}
	if err := validateNodeInput(req.Input, false); err != nil {
		return nil, err
	}

	res.writeMu.Lock()
	defer res.writeMu.Unlock()

	node, err := res.nodes.Update(ctx, req.ID, req.Input)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	if node == nil {
		return nil, nil
	}

	res.publish(ctx, model.NodeUpdated, node.ID, node)
	return node, nil
}

func (res *resolver) removeClusterNode(ctx context.Context, req model.NodeIDRequest) (bool, error) {
	if req.ID == "" {
		return false, utils.NewValidationError("Node ID is required")
	}

	res.writeMu.Lock()
	defer res.writeMu.Unlock()

	removed, err := res.nodes.Remove(ctx, req.ID)
	if err != nil || !removed {
		return false, err
	}

	res.publish(ctx, model.NodeRemoved, req.ID, nil)
	return true, nil
}

func (res *resolver) updateNodeStatus(ctx context.Context, req model.UpdateStatusRequest) (*model.ClusterNode, error) {
	if req.ID == "" {
		return nil, utils.NewValidationError("Node ID is required")
	}
	if req.Status == nil {
		return nil, utils.NewValidationError("Status is required")
	}

	res.writeMu.Lock()
	defer res.writeMu.Unlock()

	node, err := res.nodes.SetStatus(ctx, req.ID, *req.Status)
	if err != nil || node == nil {
		return nil, err
	}

	res.publish(ctx, model.NodeStatus, node.ID, node)
	return node, nil
}

func (res *resolver) login(ctx context.Context, req model.LoginRequest) (*model.AuthPayload, error) {
	return res.auth.Login(ctx, req.Username, req.Password)
}

func (res *resolver) register(ctx context.Context, req model.RegisterRequest) (*model.AuthPayload, error) {
	return res.auth.Register(ctx, req.Username, req.Email, req.Password)
}

func (res *resolver) logout(ctx context.Context, _ struct{}) (bool, error) {
	return res.auth.Logout(ctx), nil
}

// publish must be called with writeMu held, right after the write it reports.
func (res *resolver) publish(ctx context.Context, typ model.NodeEventType, nodeID string, node *model.ClusterNode) {
	actor := identity.Actor(ctx)
	res.logger.NodeMutation(string(typ), nodeID, actor)
	if res.events == nil {
		return
	}
	res.seq++
	res.events.Publish(model.NodeEvent{
		Seq:    res.seq,
		Type:   typ,
		NodeID: nodeID,
		Node:   node.Clone(),
		Actor:  actor,
		At:     res.now().UTC(),
	})
}

// validateNodeInput checks provided fields. On creation a name is mandatory
// and a zero port means "use the default".
func validateNodeInput(in model.NodeInput, creating bool) error {
	if creating && in.Name == nil {
		return utils.NewValidationError("Node name is required")
	}
	if in.Name != nil {
		if err := utils.ValidateNodeName(*in.Name); err != nil {
			return err
		}
	}
	if in.Port != nil && !(creating && *in.Port == 0) {
		if err := utils.ValidatePort(*in.Port); err != nil {
			return err
		}
	}
	return nil
}

func translateRepositoryError(err error) error {
	if errors.Is(err, repository.ErrInvalidConnection) {
		return utils.NewValidationError(err.Error())
	}
	return err
}
