package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"vaatco/internal/database"
	"vaatco/internal/models"
	"vaatco/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeStore 可注入失败的存储桩
type fakeStore struct {
	mu          sync.Mutex
	uploads     int
	destroys    []string
	failUpload  bool
	failDestroy bool
}

func (f *fakeStore) Upload(ctx context.Context, file io.Reader, filename string) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return nil, errors.New("upstream unavailable")
	}
	f.uploads++
	publicID := fmt.Sprintf("vaatco/test-%d", f.uploads)
	return &storage.UploadResult{
		URL:      "https://cdn.example.com/" + publicID + ".jpg",
		PublicID: publicID,
	}, nil
}

func (f *fakeStore) Destroy(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroys = append(f.destroys, publicID)
	if f.failDestroy {
		return errors.New("upstream unavailable")
	}
	return nil
}

// setupGalleryTest 连接测试数据库，未配置TEST_DATABASE_DSN时跳过
func setupGalleryTest(t *testing.T, store storage.Store) (*GalleryService, uint) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.GalleryImage{}))

	db.Exec("DELETE FROM gallery_images")

	// 上传者外键需要一个管理员
	admin := &models.Admin{Name: "Tester", Email: "tester@vaatco.com", Role: models.RoleSuperAdmin, IsActive: true}
	require.NoError(t, admin.SetPassword("test-password"))
	db.Where("email = ?", admin.Email).FirstOrCreate(admin)

	database.SetDB(db)
	return NewGalleryService(store), admin.ID
}

func TestGalleryUpload_RemoteFailureCreatesNoRecord(t *testing.T) {
	store := &fakeStore{failUpload: true}
	svc, adminID := setupGalleryTest(t, store)

	_, err := svc.Upload(context.Background(), adminID, strings.NewReader("img"), "a.jpg")
	require.Error(t, err)

	var count int64
	svc.db.Model(&models.GalleryImage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGalleryUpload_Success(t *testing.T) {
	store := &fakeStore{}
	svc, adminID := setupGalleryTest(t, store)

	image, err := svc.Upload(context.Background(), adminID, strings.NewReader("img"), "a.jpg")
	require.NoError(t, err)
	assert.NotZero(t, image.ID)
	assert.True(t, image.IsActive)
	assert.Equal(t, adminID, image.UploadedByID)
}

func TestGalleryDelete_RemoteFailureStillDeletesRecord(t *testing.T) {
	store := &fakeStore{}
	svc, adminID := setupGalleryTest(t, store)

	image, err := svc.Upload(context.Background(), adminID, strings.NewReader("img"), "a.jpg")
	require.NoError(t, err)

	store.failDestroy = true
	require.NoError(t, svc.Delete(context.Background(), image.ID))

	var count int64
	svc.db.Model(&models.GalleryImage{}).Where("id = ?", image.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Contains(t, store.destroys, image.PublicID)
}

func TestGalleryBulkDelete_ReturnsLocalCount(t *testing.T) {
	store := &fakeStore{}
	svc, adminID := setupGalleryTest(t, store)

	ids := make([]uint, 0, 3)
	for i := 0; i < 3; i++ {
		image, err := svc.Upload(context.Background(), adminID, strings.NewReader("img"), "a.jpg")
		require.NoError(t, err)
		ids = append(ids, image.ID)
	}

	// 远端全部失败也不影响本地删除计数
	store.failDestroy = true
	deleted, err := svc.BulkDelete(context.Background(), append(ids, 99999))
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Len(t, store.destroys, 3)
}

func TestGalleryBulkUpdate_WhitelistOnly(t *testing.T) {
	store := &fakeStore{}
	svc, adminID := setupGalleryTest(t, store)

	image, err := svc.Upload(context.Background(), adminID, strings.NewReader("img"), "a.jpg")
	require.NoError(t, err)

	featured := true
	updated, err := svc.BulkUpdate(&BulkUpdateGalleryRequest{
		IDs:        []uint{image.ID},
		IsFeatured: &featured,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	_, err = svc.BulkUpdate(&BulkUpdateGalleryRequest{IDs: []uint{image.ID}})
	assert.Error(t, err)
}

func TestGalleryToggleFeatured_RoundTrip(t *testing.T) {
	store := &fakeStore{}
	svc, adminID := setupGalleryTest(t, store)

	image, err := svc.Upload(context.Background(), adminID, strings.NewReader("img"), "a.jpg")
	require.NoError(t, err)
	require.False(t, image.IsFeatured)

	toggled, err := svc.ToggleFeatured(image.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFeatured)

	toggled, err = svc.ToggleFeatured(image.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFeatured)
}

func TestGalleryIncrementUsage(t *testing.T) {
	store := &fakeStore{}
	svc, adminID := setupGalleryTest(t, store)

	image, err := svc.Upload(context.Background(), adminID, strings.NewReader("img"), "a.jpg")
	require.NoError(t, err)

	updated, err := svc.IncrementUsage(image.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.UsageCount)
	assert.NotNil(t, updated.LastUsedAt)
}
