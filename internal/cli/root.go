// Package cli is the terminal surface over the marketplace client: session
// lifecycle, marketplace operations, notifications, consultations, plant
// disease analysis and the admin console.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agromarket",
		Short:         "AgroMarket marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().Bool("plain", false, "non-interactive output, no spinner")

	cmd.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newProductsCommand(),
		newCartCommand(),
		newOrdersCommand(),
		newNotifyCommand(),
		newChatCommand(),
		newExpertsCommand(),
		newConsultCommand(),
		newVisitsCommand(),
		newAnalyzeCommand(),
		newHistoryCommand(),
		newAdminCommand(),
		newDoctorCommand(),
	)
	return cmd
}
