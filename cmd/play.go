package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Continue the saved run (the default command)",
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, _ := cmd.Flags().GetBool("new")
		return runApp(cmd, fresh)
	},
}

func init() {
	playCmd.Flags().Bool("new", false, "Abandon the saved run and start from stage 1")
}
