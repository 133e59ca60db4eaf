package authz

import (
	"github.com/SAP-F-2025/school-service/internal/models"
)

// Evaluator answers allow/deny questions against an injected permission
// registry. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	registry *Registry
}

func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate allows iff the role is known and its permission set intersects
// the required list (any-of semantics, a single match authorizes). An empty
// required list allows unconditionally; it is used for routes without a
// permission gate.
func (e *Evaluator) Evaluate(role models.UserRole, required ...Permission) error {
	if len(required) == 0 {
		return nil
	}
	granted, ok := e.registry.Grants(role)
	if !ok {
		return forbidden("unknown role %q", role)
	}
	if !HasAny(required, granted) {
		return forbidden("role %q lacks required permission", role)
	}
	return nil
}

// EvaluateOrOwner short-circuits to allow when the principal targets its own
// record (self-service operations such as changing one's own password),
// otherwise falls back to Evaluate.
func (e *Evaluator) EvaluateOrOwner(role models.UserRole, required []Permission, principalID, targetID string) error {
	if isSelf(principalID, targetID) {
		return nil
	}
	return e.Evaluate(role, required...)
}

func isSelf(principalID, targetID string) bool {
	return principalID != "" && principalID == targetID
}
