package cmd

import (
	"fmt"
	"os"

	"voxdemo/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "voxdemo",
	Short: "VoxDemo is the demo playback service for the Ava voice agent.",
	Run: func(cmd *cobra.Command, args []string) {
		// 默认直接启动服务器
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
