package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NodeIDRequest struct {
	ID string `json:"id"`
}

type UpdateNodeRequest struct {
	ID    string    `json:"id"`
	Input NodeInput `json:"input"`
}

type UpdateStatusRequest struct {
	ID     string  `json:"id"`
	Status *string `json:"status"`
}

type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}
