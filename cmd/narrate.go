package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"voxdemo/config"
	"voxdemo/core/deck"
	"voxdemo/core/narrate"
	"voxdemo/core/tts"
	"voxdemo/logger"
	"voxdemo/storage"

	"github.com/spf13/cobra"
)

var (
	narrateOutDir string
	narrateUpload bool
)

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "批量生成幻灯片旁白音频",
	Long: `按剧本顺序为每张幻灯片合成一段旁白音频，输出 slide-{id}.mp3。
单张幻灯片合成失败不会中断整批生成，播放端会用声明时长兜底。`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.InitLogger(logger.Config{Level: logger.InfoLevel})

		cfg := config.Load()

		// 缺少凭证是前置条件错误，立即退出
		synth, err := tts.NewClient(cfg)
		if err != nil {
			log.Fatalf("无法创建语音合成客户端: %v", err)
		}

		outDir := narrateOutDir
		if outDir == "" {
			outDir = cfg.AudioDir
		}

		demoDeck := deck.Default()
		generator := narrate.NewGenerator(demoDeck, synth, outDir)

		if narrateUpload {
			if err := storage.InitMinio(); err != nil {
				log.Fatalf("无法连接到MinIO: %v", err)
			}
			generator.SetUploader(storage.UploadObject)
		}

		fmt.Printf("开始生成旁白: %d 张幻灯片 -> %s\n", demoDeck.Len(), outDir)

		report, err := generator.Run(context.Background())
		if err != nil {
			log.Fatalf("旁白生成失败: %v", err)
		}

		for _, result := range report.Results {
			if result.Err != nil {
				fmt.Printf("幻灯片 %d: 失败 (%v)\n", result.SlideID, result.Err)
				continue
			}
			fmt.Printf("幻灯片 %d: %s (%.1f KB)\n", result.SlideID, result.Path, float64(result.Size)/1024)
		}
		fmt.Printf("\n完成: 成功 %d, 失败 %d\n", report.Succeeded(), report.Failed())

		if report.Succeeded() == 0 {
			os.Exit(1)
		}
	},
}

func init() {
	narrateCmd.Flags().StringVarP(&narrateOutDir, "out", "o", "", "输出目录 (默认使用配置中的音频目录)")
	narrateCmd.Flags().BoolVar(&narrateUpload, "upload", false, "生成后同步上传到MinIO")
	rootCmd.AddCommand(narrateCmd)
}
