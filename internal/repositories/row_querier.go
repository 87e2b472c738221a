package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tour_sales_backend/internal/reconcile"

	"github.com/lib/pq"
)

//go:generate mockgen -destination=mocks/mock_row_querier.go -package=mocks tour_sales_backend/internal/repositories RowQuerier

// Relations readable through RowQuerier.
const (
	RelationSaleLines     = "sale_lines"
	RelationStoreProducts = "store_products"
)

// ErrInvalidQuery is returned for unknown relations, columns or operators.
var ErrInvalidQuery = errors.New("invalid row query")

// Op is a comparison operator of a predicate condition.
type Op string

const (
	OpEq  Op = "="
	OpNe  Op = "<>"
	OpGte Op = ">="
	OpLte Op = "<="
	OpIn  Op = "in"
)

// Condition compares one column with a value. For OpIn the value is a []int64 or []string.
type Condition struct {
	Column string
	Op     Op
	Value  interface{}
}

// Predicate is a conjunction of conditions. The empty predicate selects every row.
type Predicate []Condition

// Where is shorthand for building a condition.
func Where(column string, op Op, value interface{}) Condition {
	return Condition{Column: column, Op: op, Value: value}
}

type relation struct {
	columns []string
	orderBy string
}

var relations = map[string]relation{
	RelationSaleLines: {
		columns: []string{
			reconcile.ColItemID, reconcile.ColSaleID, reconcile.ColProductID, reconcile.ColCompanyID,
			reconcile.ColStoreID, reconcile.ColOperatorID, reconcile.ColTourID, reconcile.ColGuideID,
			reconcile.ColGroupArrivalDate, reconcile.ColStoreEntryDate, reconcile.ColGroupPax, reconcile.ColStorePax,
			reconcile.ColQuantity, reconcile.ColUnitPrice, reconcile.ColReporterType, reconcile.ColStatus,
			reconcile.ColAgencyPct, reconcile.ColGuidePct, reconcile.ColCaptainPct, reconcile.ColOfficePct,
			reconcile.ColRateOverride, reconcile.ColNotes,
		},
		orderBy: "sale_id, item_id",
	},
	RelationStoreProducts: {
		columns: []string{
			reconcile.ColStoreID, reconcile.ColProductID,
			reconcile.ColAgencyPct, reconcile.ColGuidePct, reconcile.ColCaptainPct, reconcile.ColOfficePct,
		},
		orderBy: "store_id, product_id",
	},
}

// RowQuerier fetches raw rows of a whitelisted relation for the reconciliation core.
type RowQuerier interface {
	FetchRows(ctx context.Context, relation string, pred Predicate) ([]reconcile.RawRow, error)
}

type rowQuerier struct {
	db SQLExecutor
}

func NewRowQuerier(db *sql.DB) RowQuerier {
	return &rowQuerier{db: db}
}

// buildSelect renders the parameterised query of relation filtered by pred.
func buildSelect(relationName string, pred Predicate) (string, []interface{}, error) {
	rel, ok := relations[relationName]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown relation %q", ErrInvalidQuery, relationName)
	}
	known := make(map[string]bool, len(rel.columns))
	for _, c := range rel.columns {
		known[c] = true
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(rel.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(relationName)

	args := make([]interface{}, 0, len(pred))
	for i, cond := range pred {
		if !known[cond.Column] {
			return "", nil, fmt.Errorf("%w: column %q is not part of %s", ErrInvalidQuery, cond.Column, relationName)
		}
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		switch cond.Op {
		case OpEq, OpNe, OpGte, OpLte:
			args = append(args, cond.Value)
			fmt.Fprintf(&b, "%s %s $%d", cond.Column, cond.Op, len(args))
		case OpIn:
			switch v := cond.Value.(type) {
			case []int64:
				args = append(args, pq.Array(v))
			case []string:
				args = append(args, pq.Array(v))
			default:
				return "", nil, fmt.Errorf("%w: %s needs []int64 or []string, got %T", ErrInvalidQuery, OpIn, cond.Value)
			}
			fmt.Fprintf(&b, "%s = ANY($%d)", cond.Column, len(args))
		default:
			return "", nil, fmt.Errorf("%w: unsupported operator %q", ErrInvalidQuery, cond.Op)
		}
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(rel.orderBy)
	return b.String(), args, nil
}

// FetchRows returns every matching row as a column-name keyed map of driver values.
func (q *rowQuerier) FetchRows(ctx context.Context, relationName string, pred Predicate) ([]reconcile.RawRow, error) {
	query, args, err := buildSelect(relationName, pred)
	if err != nil {
		return nil, err
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %v", ErrDatabaseError, relationName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: reading columns of %s: %v", ErrDatabaseError, relationName, err)
	}

	out := []reconcile.RawRow{}
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scanning %s row: %v", ErrDatabaseError, relationName, err)
		}
		row := make(reconcile.RawRow, len(columns))
		for i, col := range columns {
			// The driver may reuse byte slices between rows.
			if b, ok := values[i].([]byte); ok {
				values[i] = append([]byte(nil), b...)
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s: %v", ErrDatabaseError, relationName, err)
	}
	return out, nil
}
