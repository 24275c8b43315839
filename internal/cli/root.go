package cli

import (
	"time"

	"dadmind/internal/domain"

	"github.com/spf13/cobra"
)

// App holds the collaborators used by CLI commands.
type App struct {
	Engine    *domain.Engine
	NewSource func(timeout time.Duration) domain.DocumentSource
	Decoder   domain.DocumentDecoder
}

// NewRootCmd creates the top-level "dadmind" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dadmind",
		Short:         "DadMind self-assessment and knowledge tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAssessCmd(app),
		newKnowledgeCmd(app),
		newMigrateCmd(),
	)

	return root
}
