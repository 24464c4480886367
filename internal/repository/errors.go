package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateError 将驱动错误映射为 gorm 通用错误，同时保留原始 *pgconn.PgError
// 以便上层读取约束名与数据库原文
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", gorm.ErrDuplicatedKey, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", gorm.ErrForeignKeyViolated, err)
	case pgCheckViolation:
		return fmt.Errorf("%w: %w", gorm.ErrCheckConstraintViolated, err)
	default:
		return err
	}
}
