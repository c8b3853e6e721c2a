package core

import "encoding/json"

// DataType identifies one of the supported futures time series.
type DataType string

const (
	DataTypeFundingRate        DataType = "fundingRate"
	DataTypeOpenInterest       DataType = "openInterest"
	DataTypeLongShortRatio     DataType = "longShortRatio"
	DataTypeTakerBuySellVolume DataType = "takerBuySellVolume"
)

// DataTypes lists every supported data type in presentation order.
func DataTypes() []DataType {
	return []DataType{
		DataTypeFundingRate,
		DataTypeOpenInterest,
		DataTypeLongShortRatio,
		DataTypeTakerBuySellVolume,
	}
}

// IsValid reports whether dt is one of the supported data types.
func (dt DataType) IsValid() bool {
	switch dt {
	case DataTypeFundingRate, DataTypeOpenInterest,
		DataTypeLongShortRatio, DataTypeTakerBuySellVolume:
		return true
	}
	return false
}

// Record is one upstream data point, kept as the raw JSON object it
// arrived as. Its shape depends on the data type; the only field the
// engine ever inspects is the type's timestamp field.
type Record = json.RawMessage

// Window is a half-open time interval [Start, End) in epoch milliseconds.
type Window struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts int64) bool {
	return ts >= w.Start && ts < w.End
}

// IsValid reports whether the window is non-empty.
func (w Window) IsValid() bool {
	return w.Start < w.End
}

// TerminationReason describes why a window fetch loop stopped.
type TerminationReason string

const (
	// TermEndOfRange: the cursor advanced past the requested end.
	TermEndOfRange TerminationReason = "end_of_range"
	// TermEmptyBatch: the upstream returned no further data.
	TermEmptyBatch TerminationReason = "empty_batch"
	// TermNoProgress: a page failed to advance the cursor.
	TermNoProgress TerminationReason = "no_progress"
	// TermMaxAttempts: the page-count safety valve tripped.
	TermMaxAttempts TerminationReason = "max_attempts_reached"
)

// Series is the assembled result of one window fetch: deduplicated,
// range-filtered records in ascending timestamp order plus diagnostics.
type Series struct {
	DataType DataType `json:"dataType"`
	Symbol   string   `json:"symbol"`
	Window   Window   `json:"window"`

	Records []Record `json:"records"`

	// RecordCount is len(Records); TotalUniqueFetched counts unique
	// timestamps seen before the final range filter.
	RecordCount        int `json:"recordCount"`
	TotalUniqueFetched int `json:"totalUniqueFetched"`

	Termination    TerminationReason `json:"termination"`
	PagesFetched   int               `json:"pagesFetched"`
	DroppedRecords int               `json:"droppedRecords"`

	// Warning is set when the result may be incomplete, e.g. the
	// attempt limit was reached before the range was covered.
	Warning string `json:"warning,omitempty"`
}
