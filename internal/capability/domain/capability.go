// Package domain defines the core types for agent capabilities and task dispatch.
package domain

// Handler is a stateless transform from structured input to structured output.
// Handlers must not share mutable state across concurrent invocations.
type Handler func(input map[string]any) (map[string]any, error)

// Built-in capability names, in registration order.
const (
	TextProcessing  = "text_processing"
	DataAnalysis    = "data_analysis"
	CustomerService = "customer_service"
	CodeGeneration  = "code_generation"
	Automation      = "automation"
)

// Task is a unit of work submitted against an agent. The type is matched
// against the agent's configured capability list.
type Task struct {
	Type string
	Data map[string]any
}
