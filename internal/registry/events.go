// internal/registry/events.go
package registry

import "github.com/lancechain/registry_be/internal/models"

// Events emitted exactly once per successful state-changing call,
// never on failure.

type ProfileRegistered struct {
	Address string      `json:"address"`
	Role    models.Role `json:"role"`
}

type ProjectRegistered struct {
	ID uint64 `json:"id"`
}

type ProposalSubmitted struct {
	ProjectID  uint64 `json:"project_id"`
	Freelancer string `json:"freelancer"`
}
