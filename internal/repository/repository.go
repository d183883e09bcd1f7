package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/config"
)

// Repository 封装排班系统的所有数据库访问。
// 超时时间由配置决定，单条查询与事务分别使用不同的上限。
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// queryContext 返回带有单条查询超时的 context。
func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// transactionContext 返回带有事务超时的 context，用于多条语句的原子操作。
func (r *Repository) transactionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}
