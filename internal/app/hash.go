package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// canonicalProject is the JSON shape InputHash is computed over: racks and
// demands sorted into a stable order, so two project files that differ only
// in list ordering hash the same.
type canonicalProject struct {
	Racks   []domain.Rack   `json:"racks"`
	Demands []domain.Demand `json:"demands"`
}

// InputHash returns the SHA-256 hex digest of project's canonicalized
// content, used to detect whether a plan run would reproduce an
// already-stored revision.
func InputHash(project domain.Project) (string, error) {
	racks := append([]domain.Rack(nil), project.Racks...)
	sort.Slice(racks, func(i, j int) bool { return racks[i].ID < racks[j].ID })

	demands := append([]domain.Demand(nil), project.Demands...)
	sort.Slice(demands, func(i, j int) bool { return demands[i].ID < demands[j].ID })

	raw, err := json.Marshal(canonicalProject{Racks: racks, Demands: demands})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
