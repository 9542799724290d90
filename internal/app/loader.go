package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/icecake0141/patchwork-beta/internal/alloc"
	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// LoadProject decodes a project document from r and validates it against
// the schema rules an allocation run depends on. The returned error wraps
// a decode failure, is domain.ErrEmptyProject, or is a
// *alloc.ValidationError.
func LoadProject(r io.Reader) (domain.Project, error) {
	var project domain.Project
	if err := json.NewDecoder(r).Decode(&project); err != nil {
		return domain.Project{}, fmt.Errorf("app: decode project: %w", err)
	}
	if len(project.Racks) == 0 {
		return domain.Project{}, domain.ErrEmptyProject
	}
	if err := alloc.Validate(project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}
