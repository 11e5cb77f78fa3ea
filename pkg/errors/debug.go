package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is the log-safe view of a failure. It carries store coordinates
// (SQLSTATE, table, column, constraint) but never the server's detail text,
// which echoes statement parameters such as logins.
type ErrorDump struct {
	Message string   `json:"message"`
	Code    Code     `json:"code,omitempty"`
	Chain   []string `json:"chain,omitempty"`

	Step       string `json:"step,omitempty"`
	SQLState   string `json:"sql_state,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

// Dump flattens err for structured logging. Step and constraint come from
// typed details first and fall back to the driver error.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{Message: err.Error()}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
		if details, ok := te.Details().(map[string]any); ok {
			d.Step = stringDetail(details, "step")
			d.Constraint = stringDetail(details, "constraint")
		}
	}

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		d.SQLState = pgxErr.Code
		d.Table = pgxErr.TableName
		d.Column = pgxErr.ColumnName
		if d.Constraint == "" {
			d.Constraint = pgxErr.ConstraintName
		}
	case errors.As(err, &pqErr):
		d.SQLState = string(pqErr.Code)
		d.Table = pqErr.Table
		d.Column = pqErr.Column
		if d.Constraint == "" {
			d.Constraint = pqErr.Constraint
		}
	}

	return d
}

// LogFields returns the non-empty dump entries keyed for the request logger.
func (d ErrorDump) LogFields() map[string]any {
	fields := map[string]any{"error": d.Message}
	if d.Code != "" {
		fields["error_code"] = d.Code
	}
	if len(d.Chain) > 0 {
		fields["error_chain"] = d.Chain
	}
	for key, value := range map[string]string{
		"step":       d.Step,
		"sql_state":  d.SQLState,
		"table":      d.Table,
		"column":     d.Column,
		"constraint": d.Constraint,
	} {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}

func stringDetail(details map[string]any, key string) string {
	if v, ok := details[key].(string); ok {
		return v
	}
	return ""
}
