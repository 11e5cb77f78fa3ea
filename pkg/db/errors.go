package db

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

var pgConstraintPattern = regexp.MustCompile(`constraint "([^"]+)"`)

// ConstraintViolation describes a rejected write.
type ConstraintViolation struct {
	Constraint string
	Unique     bool
	ForeignKey bool
}

// IsUniqueViolation reports whether err is a unique violation. When
// constraintName is set the violation must name that constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	v, ok := ClassifyConstraint(err)
	if !ok || !v.Unique {
		return false
	}
	if constraintName == "" || v.Constraint == "" {
		return constraintName == "" || strings.Contains(err.Error(), constraintName)
	}
	return v.Constraint == constraintName
}

// IsForeignKeyViolation reports whether err rejected a dangling reference.
func IsForeignKeyViolation(err error) bool {
	v, ok := ClassifyConstraint(err)
	return ok && v.ForeignKey
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ClassifyConstraint inspects pgx, lib/pq and sqlite errors for a
// constraint violation.
func ClassifyConstraint(err error) (ConstraintViolation, bool) {
	if err == nil {
		return ConstraintViolation{}, false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if !isConstraintCode(pgxErr.Code) {
			return ConstraintViolation{}, false
		}
		return ConstraintViolation{
			Constraint: pgxErr.ConstraintName,
			Unique:     pgxErr.Code == pgUniqueViolation,
			ForeignKey: pgxErr.Code == pgForeignKeyViolation,
		}, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if !isConstraintCode(string(pqErr.Code)) {
			return ConstraintViolation{}, false
		}
		return ConstraintViolation{
			Constraint: pqErr.Constraint,
			Unique:     string(pqErr.Code) == pgUniqueViolation,
			ForeignKey: string(pqErr.Code) == pgForeignKeyViolation,
		}, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ConstraintViolation{Unique: true}, true
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key value"):
		return ConstraintViolation{Constraint: constraintFromMessage(msg), Unique: true}, true
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ConstraintViolation{Constraint: sqliteUniqueConstraint(msg), Unique: true}, true
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ConstraintViolation{ForeignKey: true}, true
	case strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"):
		return ConstraintViolation{Constraint: sqliteConstraintDetail(msg)}, true
	}

	return ConstraintViolation{}, false
}

func isConstraintCode(code string) bool {
	switch code {
	case pgUniqueViolation, pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
		return true
	}
	return false
}

func constraintFromMessage(msg string) string {
	if m := pgConstraintPattern.FindStringSubmatch(msg); len(m) == 2 {
		return m[1]
	}
	return ""
}

// sqlite reports "UNIQUE constraint failed: users.login"; map the column
// list back to the postgres constraint naming convention.
func sqliteUniqueConstraint(msg string) string {
	detail := sqliteConstraintDetail(msg)
	if detail == "" {
		return ""
	}
	cols := strings.Split(detail, ",")
	table := ""
	names := make([]string, 0, len(cols))
	for _, col := range cols {
		col = strings.TrimSpace(col)
		parts := strings.SplitN(col, ".", 2)
		if len(parts) != 2 {
			return detail
		}
		table = parts[0]
		names = append(names, parts[1])
	}
	return table + "_" + strings.Join(names, "_") + "_key"
}

func sqliteConstraintDetail(msg string) string {
	idx := strings.Index(msg, "constraint failed:")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(msg[idx+len("constraint failed:"):])
}
