package root

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cmdSession "github.com/qa-infra/sessionctl/cmd/session"
	"github.com/qa-infra/sessionctl/internal/config"
	"github.com/qa-infra/sessionctl/internal/store"
	"github.com/qa-infra/sessionctl/utils/common"
	promptutils "github.com/qa-infra/sessionctl/utils/prompt"
)

var verbose bool

var RootCmd = &cobra.Command{
	Use:   "sessionctl",
	Short: "Session-state cache for automated test runs",
	Long:  `A CLI tool for inspecting and managing the on-disk cache of authenticated browser sessions used by automated test workers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("No subcommand provided. Showing help...")
		return cmd.Help()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		return
	}
	opts, err := cfg.StoreOptions()
	if err != nil {
		fmt.Printf("Error in store configuration: %v\n", err)
		return
	}
	opts.Logger = logger

	sessionStore, err := store.New(common.NewOsFileSystem(), common.NewFlockLocker(), opts)
	if err != nil {
		fmt.Printf("Error initializing session store: %v\n", err)
		return
	}

	RootCmd.AddCommand(cmdSession.NewSessionCommands(cmdSession.Dependencies{
		Store:    sessionStore,
		Prompter: promptutils.NewPrompt(),
	}))
}
