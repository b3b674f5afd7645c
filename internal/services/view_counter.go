package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vaatco/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const viewKeyPrefix = "views:"

// 可计数的表白名单，防止刷新时拼接任意表名
var viewTables = map[string]bool{
	"products": true,
	"blogs":    true,
}

// ViewCounter 浏览计数器。公开单条读取的计数先写入Redis缓冲，
// 由定时任务批量刷入数据库；未配置Redis时直接更新数据库。
type ViewCounter struct {
	db      *gorm.DB
	rdb     *redis.Client
	cron    *cron.Cron
	running bool
}

// NewViewCounter 创建浏览计数器
func NewViewCounter(db *gorm.DB, rdb *redis.Client) *ViewCounter {
	return &ViewCounter{
		db:   db,
		rdb:  rdb,
		cron: cron.New(),
	}
}

// Increment 记录一次浏览
func (v *ViewCounter) Increment(table string, id uint) {
	if !viewTables[table] {
		return
	}

	if v.rdb == nil {
		v.apply(table, id, 1)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("%s%s:%d", viewKeyPrefix, table, id)
	if err := v.rdb.Incr(ctx, key).Err(); err != nil {
		// Redis不可用时退回直接更新
		logger.GetLogger().Warnf("view counter redis incr failed: %v", err)
		v.apply(table, id, 1)
	}
}

// apply 将计数累加到数据库（单行原子更新）
func (v *ViewCounter) apply(table string, id uint, delta int64) {
	err := v.db.Table(table).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
	if err != nil {
		logger.GetLogger().Warnf("view counter update failed for %s/%d: %v", table, id, err)
	}
}

// Flush 将Redis中缓冲的计数刷入数据库
func (v *ViewCounter) Flush() error {
	if v.rdb == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	iter := v.rdb.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		value, err := v.rdb.GetDel(ctx, key).Result()
		if err != nil {
			if err != redis.Nil {
				logger.GetLogger().Warnf("view counter flush getdel failed for %s: %v", key, err)
			}
			continue
		}

		parts := strings.Split(strings.TrimPrefix(key, viewKeyPrefix), ":")
		if len(parts) != 2 || !viewTables[parts[0]] {
			continue
		}
		id, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			continue
		}
		delta, err := strconv.ParseInt(value, 10, 64)
		if err != nil || delta <= 0 {
			continue
		}

		v.apply(parts[0], uint(id), delta)
	}

	return iter.Err()
}

// Start 启动定时刷新
func (v *ViewCounter) Start() error {
	if v.running {
		return fmt.Errorf("view counter already running")
	}
	if v.rdb == nil {
		// 无Redis缓冲时无需定时刷新
		return nil
	}

	if _, err := v.cron.AddFunc("@every 1m", func() {
		if err := v.Flush(); err != nil {
			logger.GetLogger().Errorf("view counter flush failed: %v", err)
		}
	}); err != nil {
		return err
	}

	v.cron.Start()
	v.running = true
	logger.GetLogger().Info("View counter flush scheduler started")
	return nil
}

// Stop 停止定时刷新并做最后一次刷入
func (v *ViewCounter) Stop() {
	if !v.running {
		return
	}
	v.cron.Stop()
	v.running = false

	if err := v.Flush(); err != nil {
		logger.GetLogger().Errorf("view counter final flush failed: %v", err)
	}
}

// 全局浏览计数器实例
var globalViewCounter *ViewCounter

// SetGlobalViewCounter 设置全局浏览计数器
func SetGlobalViewCounter(v *ViewCounter) {
	globalViewCounter = v
}

// GetViewCounter 获取全局浏览计数器
func GetViewCounter() *ViewCounter {
	return globalViewCounter
}
