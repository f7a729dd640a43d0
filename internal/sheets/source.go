package sheets

import "context"

// Source returns the raw rows of a named sheet
type Source interface {
	Rows(ctx context.Context, sheet string) ([][]string, error)
}

// Lister is implemented by sources that can enumerate their sheets
type Lister interface {
	SheetNames(ctx context.Context) ([]string, error)
}
