package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"voxdemo/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	minioClient *minio.Client
)

// InitMinio 初始化 MinIO 客户端并确保存储桶存在
func InitMinio() error {
	cfg := config.Load()

	log.Printf("正在连接 MinIO 服务器: %s, Bucket: %s", cfg.MinioEndpoint, cfg.MinioBucket)

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("创建 MinIO 客户端失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 检查存储桶是否存在，不存在则创建
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("检查存储桶失败: %v", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{
			Region: cfg.MinioRegion,
		})
		if err != nil {
			return fmt.Errorf("创建存储桶失败: %v", err)
		}
		log.Printf("成功创建存储桶: %s", cfg.MinioBucket)
	}

	minioClient = client
	log.Println("MinIO 客户端初始化成功")
	return nil
}

// GetMinioClient 获取 MinIO 客户端实例
func GetMinioClient() *minio.Client {
	return minioClient
}

// UploadObject 上传字节内容到存储桶
func UploadObject(ctx context.Context, objectPath string, data []byte, contentType string) error {
	if minioClient == nil {
		return fmt.Errorf("MinIO 客户端未初始化")
	}

	cfg := config.Load()
	_, err := minioClient.PutObject(ctx, cfg.MinioBucket, objectPath,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("上传对象 %s 失败: %w", objectPath, err)
	}
	return nil
}

// OpenObject 打开存储桶中的对象用于读取，调用方负责 Close
func OpenObject(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	if minioClient == nil {
		return nil, fmt.Errorf("MinIO 客户端未初始化")
	}

	cfg := config.Load()
	object, err := minioClient.GetObject(ctx, cfg.MinioBucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s 失败: %w", objectPath, err)
	}
	return object, nil
}

// StatObject 获取对象信息，对象不存在时返回错误
func StatObject(ctx context.Context, objectPath string) (minio.ObjectInfo, error) {
	if minioClient == nil {
		return minio.ObjectInfo{}, fmt.Errorf("MinIO 客户端未初始化")
	}

	cfg := config.Load()
	return minioClient.StatObject(ctx, cfg.MinioBucket, objectPath, minio.StatObjectOptions{})
}
