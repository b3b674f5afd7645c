package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"vaatco/pkg/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// UploadResult 上传结果描述符
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

// Store 对象存储接口
type Store interface {
	// Upload 上传文件，返回存储描述符
	Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)

	// Destroy 根据public_id删除远端对象
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryStore 基于Cloudinary REST API的存储实现
type CloudinaryStore struct {
	client    *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

// NewCloudinaryStore 创建Cloudinary存储客户端
func NewCloudinaryStore(cfg config.CloudinaryConfig) *CloudinaryStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30
	}

	client := resty.New().
		SetBaseURL("https://api.cloudinary.com/v1_1/" + cfg.CloudName).
		SetTimeout(time.Duration(timeout) * time.Second)

	return &CloudinaryStore{
		client:    client,
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
	}
}

type destroyResponse struct {
	Result string `json:"result"`
}

// sign 按Cloudinary规则生成签名：参数按键排序拼接后追加密钥取SHA-1
func (s *CloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}

// Upload 上传文件
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	publicID := uuid.NewString()
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	signed := map[string]string{
		"folder":    s.folder,
		"public_id": publicID,
		"timestamp": ts,
	}

	var result UploadResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, file).
		SetFormData(map[string]string{
			"api_key":   s.apiKey,
			"folder":    s.folder,
			"public_id": publicID,
			"timestamp": ts,
			"signature": s.sign(signed),
		}).
		SetResult(&result).
		Post("/image/upload")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cloudinary upload failed: %s", resp.Status())
	}

	return &result, nil
}

// Destroy 删除远端对象，对象已不存在视为成功
func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	signed := map[string]string{
		"public_id": publicID,
		"timestamp": ts,
	}

	var result destroyResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"api_key":   s.apiKey,
			"public_id": publicID,
			"timestamp": ts,
			"signature": s.sign(signed),
		}).
		SetResult(&result).
		Post("/image/destroy")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("cloudinary destroy failed: %s", resp.Status())
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy failed: %s", result.Result)
	}

	return nil
}
