package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/hoa_billing_app/internal/platform/config"
	"github.com/SscSPs/hoa_billing_app/internal/utils"
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Generate a scheduler x-api-key and its IMPORT_API_TOKEN_HASH",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, hash, err := utils.NewAPIToken()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "x-api-key: %s\nIMPORT_API_TOKEN_HASH=%s\n", token, hash)
			return nil
		},
	}
}

func newJWTCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "jwt --subject <name> [--ttl 1h]",
		Short: "Sign an admin bearer token with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			signed, err := utils.GenerateJWT(subject, cfg.JWTSecret, ttl, utils.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (admin name)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
