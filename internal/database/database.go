package database

import (
	"StreamHub/internal/config"
	"StreamHub/internal/model"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models 是需要自动迁移的全部表，seeder也用它来删表重建
var Models = []interface{}{
	&model.User{},
	&model.Video{},
	&model.Comment{},
	&model.Like{},
	&model.Subscription{},
	&model.Playlist{},
}

// Dialector 根据驱动名选择gorm的方言
// mysql的DSN形如 user:pass@tcp(127.0.0.1:3306)/streamhub?charset=utf8mb4&parseTime=True&loc=Local
// postgres的DSN形如 host=127.0.0.1 user=postgres password=xxx dbname=streamhub port=5432 sslmode=disable
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", driver)
	}
}

// Open 连接数据库，debug为true时打印每条SQL
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// AutoMigrate 没有这个表就创建，没有属性列则创建列，不会主动删除和修改
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
