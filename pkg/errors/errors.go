package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// ErrDuplicateKey 唯一约束冲突
var ErrDuplicateKey = errors.New("duplicate key")

// pgError 从错误链中提取 PostgreSQL 错误
func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation 是否为唯一约束冲突
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation 是否为外键约束冲突（被引用的记录不存在）
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation
}

// IsCheckViolation 是否为 CHECK / NOT NULL 约束冲突
func IsCheckViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	pgErr, ok := pgError(err)
	return ok && (pgErr.Code == codeCheckViolation || pgErr.Code == codeNotNullViolation)
}

// ConstraintName 返回违反的约束名，非 PostgreSQL 错误时为空
func ConstraintName(err error) string {
	if pgErr, ok := pgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

// ColumnName 返回出错的列名（NOT NULL 冲突时 PostgreSQL 只提供列名）
func ColumnName(err error) string {
	if pgErr, ok := pgError(err); ok {
		return pgErr.ColumnName
	}
	return ""
}
