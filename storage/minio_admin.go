package storage

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BucketStats 存储桶统计信息
type BucketStats struct {
	TotalObjects int64
	TotalSize    int64
	LastModified time.Time
}

// AdminClient 封装了用于命令行管理的 MinIO 客户端
type AdminClient struct {
	client     *minio.Client
	bucketName string
}

// NewAdminClient 创建一个新的管理客户端
func NewAdminClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*AdminClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %v", err)
	}

	return &AdminClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// ListObjects 列出指定前缀下的对象及统计信息
func (m *AdminClient) ListObjects(prefix string) error {
	ctx := context.Background()

	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶是否存在失败: %v", err)
	}
	if !exists {
		return fmt.Errorf("存储桶 %s 不存在", m.bucketName)
	}

	var stats BucketStats
	var keys []string
	sizes := make(map[string]int64)
	modified := make(map[string]time.Time)

	objectCh := m.client.ListObjects(ctx, m.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			log.Printf("列出对象时出错: %v", object.Err)
			continue
		}
		stats.TotalSize += object.Size
		stats.TotalObjects++
		if object.LastModified.After(stats.LastModified) {
			stats.LastModified = object.LastModified
		}
		keys = append(keys, object.Key)
		sizes[object.Key] = object.Size
		modified[object.Key] = object.LastModified
	}

	fmt.Printf("存储桶信息:\n")
	fmt.Printf("名称: %s\n", m.bucketName)
	fmt.Printf("总大小: %.2f MB\n", float64(stats.TotalSize)/1024/1024)
	fmt.Printf("对象数量: %d\n", stats.TotalObjects)
	if stats.TotalObjects > 0 {
		fmt.Printf("最后修改时间: %s\n", stats.LastModified.Format(time.RFC3339))
	}
	fmt.Println("\n文件列表:")

	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("文件名: %s, 大小: %.2f MB, 最后修改时间: %s\n",
			key,
			float64(sizes[key])/1024/1024,
			modified[key].Format(time.RFC3339))
	}

	return nil
}

// DeleteDirectory 删除指定前缀下的所有对象
func (m *AdminClient) DeleteDirectory(prefix string) error {
	ctx := context.Background()

	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	objectCh := m.client.ListObjects(ctx, m.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var deleted int
	for object := range objectCh {
		if object.Err != nil {
			log.Printf("列出对象时出错: %v", object.Err)
			continue
		}
		if err := m.client.RemoveObject(ctx, m.bucketName, object.Key, minio.RemoveObjectOptions{}); err != nil {
			log.Printf("删除对象 %s 失败: %v", object.Key, err)
			continue
		}
		deleted++
	}

	fmt.Printf("已删除 %d 个对象 (前缀: %s)\n", deleted, prefix)
	return nil
}
