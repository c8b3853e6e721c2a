package fetch

import (
	"fmt"

	"github.com/coinlens/coinlens/internal/core"
	"github.com/tidwall/gjson"
)

// strategy binds a data type to the record field carrying its timestamp.
// Selected once per request; the loop never re-inspects the type.
type strategy struct {
	timestampField string
}

var strategies = map[core.DataType]strategy{
	core.DataTypeFundingRate:        {timestampField: "fundingTime"},
	core.DataTypeOpenInterest:       {timestampField: "timestamp"},
	core.DataTypeLongShortRatio:     {timestampField: "timestamp"},
	core.DataTypeTakerBuySellVolume: {timestampField: "timestamp"},
}

// strategyFor returns the strategy bound to dt.
func strategyFor(dt core.DataType) (strategy, error) {
	s, ok := strategies[dt]
	if !ok {
		return strategy{}, fmt.Errorf("no strategy for data type %q", dt)
	}
	return s, nil
}

// extract returns the record's epoch-ms timestamp. Missing field or
// non-numeric value yields core.ErrInvalidRecord.
func (s strategy) extract(rec core.Record) (int64, error) {
	res := gjson.GetBytes(rec, s.timestampField)
	if !res.Exists() {
		return 0, core.WrapError(core.ErrInvalidRecord,
			fmt.Errorf("field %q not present", s.timestampField))
	}
	if res.Type != gjson.Number {
		return 0, core.WrapError(core.ErrInvalidRecord,
			fmt.Errorf("field %q is %s, not a number", s.timestampField, res.Type))
	}
	return res.Int(), nil
}

// ExtractTimestamp returns the timestamp of rec according to the field
// binding of dt. It is pure; a failure never affects loop state.
func ExtractTimestamp(rec core.Record, dt core.DataType) (int64, error) {
	s, err := strategyFor(dt)
	if err != nil {
		return 0, err
	}
	return s.extract(rec)
}

// TimestampField exposes the field binding for a data type, for callers
// that describe the series (e.g. the data-type listing endpoint).
func TimestampField(dt core.DataType) string {
	return strategies[dt].timestampField
}
