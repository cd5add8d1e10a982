package cmd

import (
	"fmt"
)

// List is a command to print indexed articles.
type List struct {
	Paths PathsGroup `group:"paths" namespace:"paths" env-namespace:"PATHS"`
}

// Execute runs the command.
func (c List) Execute(_ []string) error {
	ctx, lg := runCtx()

	idx, err := openIndex(c.Paths.StorePath)
	if err != nil {
		return err
	}
	defer closeIndex(lg, idx)

	refs, err := idx.List(ctx)
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}

	for _, ref := range refs {
		fmt.Printf("#%d\t%s\t%s\t%s\n",
			ref.IssueNumber, ref.UpdatedAt.Format("2006-01-02 15:04"), ref.Title, ref.Path)
	}

	return nil
}
