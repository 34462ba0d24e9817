package types

// AgentStatus describes how an agent invoker produced its payload.
type AgentStatus string

// Agent result statuses. The caller never receives an empty payload without
// an explanation: a gateway failure yields StatusFallback with a statically
// built payload of the same shape as the success path.
const (
	StatusSuccess  AgentStatus = "success"
	StatusFallback AgentStatus = "fallback"
	StatusNoData   AgentStatus = "no_data"
	StatusError    AgentStatus = "error"
)

// AgentResult is the typed envelope every agent operation returns.
type AgentResult struct {
	Agent   AgentName      `json:"agent"`
	Status  AgentStatus    `json:"status"`
	Payload map[string]any `json:"payload"`
}

// Usable reports whether the payload carries analysis the caller can act on.
func (r *AgentResult) Usable() bool {
	return r != nil && (r.Status == StatusSuccess || r.Status == StatusFallback) && len(r.Payload) > 0
}
