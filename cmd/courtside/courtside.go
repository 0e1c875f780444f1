// Package courtsidecmder
package courtsidecmder

import (
	"github.com/spf13/cobra"

	servecmder "github.com/courtsideco/courtside/cmd/courtside/serve"
	versioncmder "github.com/courtsideco/courtside/cmd/courtside/version"
)

const courtsideLongDesc string = `Courtside is an A2A agent for live NBA data.

Run services using:
  courtside serve      Run the A2A API server
  courtside version    Print the version`

const courtsideShortDesc string = "Courtside - NBA A2A Agent"

func NewCourtsideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courtside",
		Short: courtsideShortDesc,
		Long:  courtsideLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
