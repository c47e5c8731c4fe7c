package dto

import (
	"time"

	agentDomain "github.com/aistaff/platform/internal/agent/domain"
)

// AgentResponse represents an agent in API responses.
type AgentResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Capabilities []string  `json:"capabilities"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// MapAgentToResponse converts a domain agent to an API response.
func MapAgentToResponse(agent *agentDomain.Agent) AgentResponse {
	capabilities := agent.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	return AgentResponse{
		ID:           agent.ID,
		Name:         agent.Name,
		Description:  agent.Description,
		Capabilities: capabilities,
		Status:       agent.Status,
		CreatedAt:    agent.CreatedAt,
	}
}

// ListAgentsResponse represents a paginated list of agents in API responses.
type ListAgentsResponse struct {
	Data []AgentResponse `json:"data"`
}

// MapAgentsToListResponse converts a slice of domain agents to a list API response.
func MapAgentsToListResponse(agents []*agentDomain.Agent) ListAgentsResponse {
	agentResponses := make([]AgentResponse, 0, len(agents))
	for _, agent := range agents {
		agentResponses = append(agentResponses, MapAgentToResponse(agent))
	}
	return ListAgentsResponse{
		Data: agentResponses,
	}
}

// TaskFailure reports a capability handler failure as structured output.
type TaskFailure struct {
	Capability string `json:"capability"`
	Message    string `json:"message"`
}

// TaskResultResponse contains the outcome of a task execution. Exactly one
// of Output or Error is set.
type TaskResultResponse struct {
	Output map[string]any `json:"output,omitempty"`
	Error  *TaskFailure   `json:"error,omitempty"`
}
