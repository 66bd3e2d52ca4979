package cmd

import (
	"voxdemo/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动演示服务器",
	Long:  `启动演示系统的HTTP服务器，提供幻灯片API、旁白音频、录制产物列表和实时演示会话`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
