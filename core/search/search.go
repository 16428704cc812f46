package search

import (
	"context"

	"github.com/goto/scout/core/entity"
)

// Catalog is the entity-catalog collaborator queried for suggestions. It
// returns entities in catalog relevance order; callers must not re-sort.
type Catalog interface {
	Search(ctx context.Context, req Request) ([]entity.Entity, error)
}

// CatalogFunc adapts a plain function into a Catalog.
type CatalogFunc func(ctx context.Context, req Request) ([]entity.Entity, error)

func (f CatalogFunc) Search(ctx context.Context, req Request) ([]entity.Entity, error) {
	return f(ctx, req)
}

// Reporter receives search failures. Fire-and-forget: the searcher never
// consults a return value and never retries on its behalf.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// ReporterFunc adapts a plain function into a Reporter.
type ReporterFunc func(ctx context.Context, err error)

func (f ReporterFunc) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// Request represents a search query along with any corresponding filter(s).
type Request struct {
	// Text to search for
	Text string

	// Filters specifies entity field values to look for.
	// Multiple values can be specified for a single key
	Filters map[string][]string

	// Fields narrows which entity fields the catalog should return,
	// to bound payload size. Empty means all fields.
	Fields []string

	// Size is the number of relevant results to return
	Size int
}

// DisplayFields is the field set the searcher requests for suggestions:
// just enough to render a row.
var DisplayFields = []string{"name", "description", "kind"}
