package reconcile

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used for every date on a line item.
const DateLayout = "2006-01-02"

var (
	hundred  = decimal.NewFromInt(100)
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// CoerceNumeric turns any raw value into a decimal. Nil, empty or unparsable strings, NaN and
// infinities, and unsupported types all become 0. Every numeric field read from a raw row goes
// through here, so this is the only place bad numbers are silently zeroed.
func CoerceNumeric(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case int:
		return decimal.NewFromInt(int64(n))
	case int8:
		return decimal.NewFromInt(int64(n))
	case int16:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case *int64:
		if n == nil {
			return decimal.Zero
		}
		return decimal.NewFromInt(*n)
	case uint:
		return fromUint64(uint64(n))
	case uint8:
		return decimal.NewFromInt(int64(n))
	case uint16:
		return decimal.NewFromInt(int64(n))
	case uint32:
		return decimal.NewFromInt(int64(n))
	case uint64:
		return fromUint64(n)
	case float32:
		return coerceFloat(float64(n))
	case float64:
		return coerceFloat(n)
	case *float64:
		if n == nil {
			return decimal.Zero
		}
		return coerceFloat(*n)
	case json.Number:
		return coerceString(string(n))
	case string:
		return coerceString(n)
	case *string:
		if n == nil {
			return decimal.Zero
		}
		return coerceString(*n)
	case []byte:
		return coerceString(string(n))
	default:
		return decimal.Zero
	}
}

// CoerceInt is CoerceNumeric truncated towards zero. Values outside the int64 range become 0.
func CoerceInt(v any) int64 {
	d := CoerceNumeric(v).Truncate(0)
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0
	}
	return d.IntPart()
}

func nonNegativeInt(v any) int64 {
	if n := CoerceInt(v); n > 0 {
		return n
	}
	return 0
}

func fromUint64(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func coerceFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func coerceString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func clampRate(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case *bool:
		return b != nil && *b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	case []byte:
		parsed, err := strconv.ParseBool(strings.TrimSpace(string(b)))
		return err == nil && parsed
	default:
		return false
	}
}

func coerceText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case *string:
		if s == nil {
			return ""
		}
		return strings.TrimSpace(*s)
	case []byte:
		return strings.TrimSpace(string(s))
	default:
		return ""
	}
}

func coerceDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	}
	s := coerceText(v)
	if len(s) >= len(DateLayout) {
		if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return s[:len(DateLayout)]
		}
	}
	return s
}

// ParseStatus maps a raw status to a known Status. Missing or unknown values are approved.
func ParseStatus(v any) Status {
	s := Status(strings.ToLower(coerceText(v)))
	switch s {
	case StatusApproved, StatusPending, StatusCancelled:
		return s
	case "canceled":
		return StatusCancelled
	default:
		return StatusApproved
	}
}

// Normalize converts a raw sale-line row into a LineItem. Store rows carry commission rates
// and the override flag; guide rows never do, whatever columns the row happens to have.
func Normalize(raw RawRow, reporter ReporterType) LineItem {
	if !reporter.Valid() {
		reporter = ReporterStore
	}
	item := LineItem{
		ItemID:           CoerceInt(raw[ColItemID]),
		SaleID:           CoerceInt(raw[ColSaleID]),
		ProductID:        CoerceInt(raw[ColProductID]),
		CompanyID:        CoerceInt(raw[ColCompanyID]),
		StoreID:          CoerceInt(raw[ColStoreID]),
		OperatorID:       CoerceInt(raw[ColOperatorID]),
		TourID:           CoerceInt(raw[ColTourID]),
		GuideID:          CoerceInt(raw[ColGuideID]),
		GroupArrivalDate: coerceDate(raw[ColGroupArrivalDate]),
		StoreEntryDate:   coerceDate(raw[ColStoreEntryDate]),
		GroupPax:         nonNegativeInt(raw[ColGroupPax]),
		StorePax:         nonNegativeInt(raw[ColStorePax]),
		Quantity:         nonNegativeInt(raw[ColQuantity]),
		UnitPrice:        nonNegative(CoerceNumeric(raw[ColUnitPrice])),
		ReporterType:     reporter,
		Status:           ParseStatus(raw[ColStatus]),
		Notes:            coerceText(raw[ColNotes]),
	}
	if reporter == ReporterStore {
		item.Rates = Rates{
			Agency:  clampRate(CoerceNumeric(raw[ColAgencyPct])),
			Guide:   clampRate(CoerceNumeric(raw[ColGuidePct])),
			Captain: clampRate(CoerceNumeric(raw[ColCaptainPct])),
			Office:  clampRate(CoerceNumeric(raw[ColOfficePct])),
		}
		item.RateOverride = coerceBool(raw[ColRateOverride])
	}
	return item
}

// NormalizeRows normalizes rows whose reporter type is read from the reporter_type column.
func NormalizeRows(rows []RawRow) []LineItem {
	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		reporter := ReporterType(strings.ToLower(coerceText(row[ColReporterType])))
		items = append(items, Normalize(row, reporter))
	}
	return items
}
