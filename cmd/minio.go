package cmd

import (
	"fmt"
	"log"

	"voxdemo/config"
	"voxdemo/storage"

	"github.com/spf13/cobra"
)

var (
	minioPrefix string
	minioDelete bool
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "MinIO存储桶管理",
	Long:  `查看和管理MinIO存储桶中的旁白与录制文件，支持按前缀列出和删除目录。`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		client, err := storage.NewAdminClient(
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("创建MinIO客户端失败: %v", err)
		}

		if minioDelete {
			if minioPrefix == "" {
				log.Fatal("删除操作需要指定目录前缀")
			}
			fmt.Printf("删除目录: %s\n", minioPrefix)
			if err := client.DeleteDirectory(minioPrefix); err != nil {
				log.Fatalf("删除目录失败: %v", err)
			}
			return
		}

		fmt.Printf("列出存储桶中的文件 (前缀: %s)...\n", minioPrefix)
		if err := client.ListObjects(minioPrefix); err != nil {
			log.Fatalf("列出文件失败: %v", err)
		}
	},
}

func init() {
	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "对象前缀 (audio/ 或 recordings/)")
	minioCmd.Flags().BoolVar(&minioDelete, "delete", false, "删除指定前缀下的所有对象")
	rootCmd.AddCommand(minioCmd)
}
