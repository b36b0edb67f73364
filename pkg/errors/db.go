package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

// constraintFields 唯一约束名 -> 对外展示的字段名（与 migrations 中的约束名保持一致）
var constraintFields = map[string]string{
	"uniq_users_email":         "email",
	"uniq_users_single_admin":  "role",
	"uniq_students_receipt_id": "receiptId",
}

// sqliteColumnFields SQLite 报错中的 table.column -> 字段名
var sqliteColumnFields = map[string]string{
	"users.email":         "email",
	"users.role":          "role",
	"students.receipt_id": "receiptId",
}

// FromDB 将存储层错误归类为业务错误
//   - 记录不存在 → NotFound
//   - 唯一约束冲突 → Conflict（携带字段名）
//   - 非空 / CHECK 约束 → Validation
//   - 其他 → Internal
func FromDB(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Kind: KindNotFound, Msg: "record not found", Err: err}
	}

	if field, ok := DuplicateField(err); ok {
		return &AppError{
			Kind: KindConflict,
			Msg:  "Duplicate value entered for " + field + " field, please choose another value",
			Err:  err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation:
			return &AppError{Kind: KindValidation, Msg: pgErr.ColumnName + " is required", Err: err}
		case pgCheckViolation:
			return &AppError{Kind: KindValidation, Msg: "invalid value violates " + pgErr.ConstraintName, Err: err}
		}
	}

	return &AppError{Kind: KindInternal, Msg: "Database error", Err: err}
}

// DuplicateField 判断是否为唯一约束冲突，并尽量给出冲突字段名
func DuplicateField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if f, ok := constraintFields[pgErr.ConstraintName]; ok {
			return f, true
		}
		return pgErr.ConstraintName, true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return sqliteField(liteErr.Error()), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "unique", true
	}
	return "", false
}

// sqliteField 从 "UNIQUE constraint failed: students.receipt_id" 中提取字段
func sqliteField(msg string) string {
	idx := strings.LastIndex(msg, ": ")
	if idx < 0 {
		return "unique"
	}
	cols := strings.Split(msg[idx+2:], ", ")
	if f, ok := sqliteColumnFields[cols[0]]; ok {
		return f
	}
	return cols[0]
}
