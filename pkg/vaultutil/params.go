package vaultutil

import (
	"github.com/spf13/cobra"
)

// Params contains the connection settings for the Vault manager. The token
// needs permissions to renew itself and to read the configured secret paths.
type Params struct {
	Address string
	Token   string

	AWSEnginePath string
	AWSRole       string
}

// Bind registers the command line flags for the Vault connection.
func (p *Params) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&p.Address, "vault-address", "http://127.0.0.1:8200",
		`Address of the Vault server.`)

	cmd.PersistentFlags().StringVar(
		&p.Token, "vault-token", "",
		`Token used to authenticate against Vault.`)

	cmd.PersistentFlags().StringVar(
		&p.AWSEnginePath, "vault-aws-engine-path", "aws",
		`Mount path of the AWS secret engine.`)

	cmd.PersistentFlags().StringVar(
		&p.AWSRole, "vault-aws-role", "",
		`Role name for generating AWS credentials.`)
}
