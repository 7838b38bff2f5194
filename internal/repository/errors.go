package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey 表示违反了唯一索引（用户名、点赞、关注关系）
// 并发情况下service层的“先查后插”挡不住，最后由数据库兜底
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotFound 直接复用gorm的记录不存在错误，service层用errors.Is判断
var ErrNotFound = gorm.ErrRecordNotFound

// translateError 把不同数据库驱动的“重复键”错误统一成ErrDuplicateKey
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	// MySQL错误号 1062 就是 "Duplicate entry"
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicateKey
	}
	// Postgres unique_violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateKey
	}
	return err
}

// IsNotFound 判断是不是记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
