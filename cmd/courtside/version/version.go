// Package versioncmder provides the version cobra command.
package versioncmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtsideco/courtside/pkg/utils"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the courtside version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), utils.Version)
		},
	}
}
