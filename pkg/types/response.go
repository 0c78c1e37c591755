package types

// ErrorEnvelope is the uniform error payload: { "error": <message> }.
// The success payload is the bare entity, matching the legacy wire contract.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// MessageEnvelope acknowledges mutations that return no entity.
type MessageEnvelope struct {
	Message string `json:"message"`
}
