package main

import (
	"os"

	"github.com/focusmode/focusmode/internal/cli"
	"github.com/focusmode/focusmode/internal/services"
	"github.com/spf13/cobra"
)

func newResetPasswordCommand(env *runtimeEnv) *cobra.Command {
	var (
		generate bool
		storeArg storageFlags
	)

	cmd := &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Set a new password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.cfg
			storeArg.apply(cmd, cfg)
			if err := validated(cfg); err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg, env.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			// The secret is irrelevant here; no token is issued.
			auth := services.NewAuthService(store.Users(), []byte("reset-password"), cfg.Auth.TokenTTL)
			return cli.RunResetPasswordCommand(cmd.Context(), auth, args[0], cli.ResetPasswordOptions{
				Generate: generate,
				Prompt:   cli.TerminalPrompt(os.Stdin, cmd.OutOrStdout()),
				Out:      cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&generate, "generate", false, "generate and print a temporary password instead of prompting")
	storeArg.register(cmd)
	return cmd
}
