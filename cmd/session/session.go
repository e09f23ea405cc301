package session

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/qa-infra/sessionctl/internal/store"
	"github.com/qa-infra/sessionctl/models"
	promptutils "github.com/qa-infra/sessionctl/utils/prompt"
)

type Dependencies struct {
	Store    store.SessionStore
	Prompter promptutils.Prompter
}

func NewSessionCommands(deps Dependencies) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and manage cached login sessions",
		Long:  "A set of commands to inspect, clear and derive keys for cached session records.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
	}

	sessionCmd.AddCommand(StatusCmd(deps))
	sessionCmd.AddCommand(ClearCmd(deps))
	sessionCmd.AddCommand(KeyCmd())

	return sessionCmd
}

func StatusCmd(deps Dependencies) *cobra.Command {
	var kindFlag, identityFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cached session record for an identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseSessionKind(kindFlag)
			if err != nil {
				return err
			}

			key := store.DeriveKey(kind, identityFlag)
			meta, err := deps.Store.Metadata(kind, identityFlag)
			if err != nil {
				cmd.Printf("No cached session for key %s (a full login will run next time)\n", key)
				return nil
			}

			state := "valid"
			if time.Now().After(meta.ExpiresAt) {
				state = "expired"
			}
			cmd.Printf("Key:       %s\n", key)
			cmd.Printf("Identity:  %s\n", meta.Identity)
			cmd.Printf("Kind:      %s\n", meta.SessionKind)
			cmd.Printf("Created:   %s\n", meta.CreatedAt.Format(time.RFC3339))
			cmd.Printf("Expires:   %s (%s)\n", meta.ExpiresAt.Format(time.RFC3339), state)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", string(models.KindAdmin), "session kind")
	cmd.Flags().StringVar(&identityFlag, "identity", "", "account identity")
	_ = cmd.MarkFlagRequired("identity")
	return cmd
}

func ClearCmd(deps Dependencies) *cobra.Command {
	var kindFlag, identityFlag string
	var allFlag, yesFlag bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached session records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !allFlag && identityFlag == "" {
				return fmt.Errorf("either --identity or --all is required")
			}

			if allFlag {
				if !yesFlag && !deps.Prompter.PromptForConfirmation("Remove every cached session record") {
					cmd.Println("Aborted.")
					return nil
				}
				removed := deps.Store.PurgeAll()
				cmd.Printf("Removed %d session record(s)\n", removed)
				return nil
			}

			kind, err := models.ParseSessionKind(kindFlag)
			if err != nil {
				return err
			}
			key := store.DeriveKey(kind, identityFlag)
			if !yesFlag && !deps.Prompter.PromptForConfirmation(fmt.Sprintf("Remove cached session %s", key)) {
				cmd.Println("Aborted.")
				return nil
			}
			deps.Store.Cleanup(kind, identityFlag)
			cmd.Printf("Removed session record %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", string(models.KindAdmin), "session kind")
	cmd.Flags().StringVar(&identityFlag, "identity", "", "account identity")
	cmd.Flags().BoolVar(&allFlag, "all", false, "remove every cached record")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func KeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <kind> <identity>",
		Short: "Print the derived store key for a kind and identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseSessionKind(args[0])
			if err != nil {
				return err
			}
			cmd.Println(store.DeriveKey(kind, args[1]))
			return nil
		},
	}
}
