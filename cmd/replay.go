package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"voxdemo/core/replay"
	"voxdemo/logger"

	"github.com/spf13/cobra"
)

var (
	replayTranscript string
	replayAddr       string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "回放一段对话转写供人工录屏",
	Long: `把一段已存档的通话转写逐轮回放到本地浏览器页面上，
节奏按每轮文字长度推算，供操作者用外部录屏工具采集演示视频。`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogger(logger.Config{Level: logger.InfoLevel})

		if replayTranscript == "" {
			log.Fatal("必须用 --transcript 指定转写文件")
		}

		// 转写缺失或格式错误是前置条件错误，立即退出
		turns, err := replay.LoadTranscript(replayTranscript)
		if err != nil {
			log.Fatalf("无法加载转写: %v", err)
		}
		fmt.Printf("已解析 %d 轮对话\n", len(turns))

		surface := replay.NewWebSurface(replayAddr)
		fmt.Printf("请在浏览器打开: %s\n", surface.URL())

		stdin := bufio.NewReader(os.Stdin)
		prompt := func(message string) error {
			fmt.Printf("%s ", message)
			_, err := stdin.ReadString('\n')
			return err
		}

		replayer := replay.NewReplayer(surface, prompt)
		if err := replayer.Run(context.Background(), turns); err != nil {
			log.Fatalf("回放失败: %v", err)
		}
		fmt.Println("回放完成")
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayTranscript, "transcript", "t", "", "对话转写文件路径")
	replayCmd.Flags().StringVar(&replayAddr, "addr", "127.0.0.1:7777", "回放页面监听地址")
	rootCmd.AddCommand(replayCmd)
}
