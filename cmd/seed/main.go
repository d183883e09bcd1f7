package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/config"
	"github.com/canteen-dev/restaurant-roster/backend/internal/repository"
	"github.com/canteen-dev/restaurant-roster/backend/internal/seed"
	"github.com/canteen-dev/restaurant-roster/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var week string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入随机人数约束, 3: 为某一周插入随机空闲时间, 4: 插入固定演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&week, "week", "", "周起始日期 (YYYY-MM-DD)，操作 3 需要")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				employee, err := utils.GenerateRandomEmployee(cfg.Seed.Employee.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机员工", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateEmployee(employee); err != nil {
					slog.Error("无法插入员工", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入员工成功", slog.Int("count", n-cnt))
		}
	case 2:
		limits := utils.GenerateRandomStaffingLimits()

		cnt := 0
		for _, limit := range limits {
			if err := repo.CreateStaffingLimit(limit); err != nil {
				slog.Error("无法插入人数约束", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入人数约束成功", slog.Int("count", cnt))
	case 3:
		parsed, err := time.Parse("2006-01-02", week)
		if err != nil {
			slog.Error("请输入合法的周起始日期", slog.String("week", week))
			return
		}
		weekStart := utils.NormalizeWeekStart(parsed)

		// 为每一个可排班的员工都生成一周的空闲时间
		employees, err := repo.GetAllEmployees()
		if err != nil {
			slog.Error("无法获取所有员工", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for _, employee := range employees {
			if !employee.IsSchedulable() {
				continue
			}

			entries := utils.GenerateRandomAvailability(weekStart, employee)
			if err := repo.UpsertAvailabilityEntries(entries); err != nil {
				slog.Error("无法插入空闲时间", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入空闲时间成功", slog.Int("count", cnt))
	case 4:
		seed.SeedFixtureData(repo, cfg.Seed.Employee.Password)
	default:
		slog.Error("指定的操作非法")
	}
}
