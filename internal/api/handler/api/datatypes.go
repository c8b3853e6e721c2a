// internal/api/handler/api/datatypes.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/coinlens/coinlens/internal/api/response"
	"github.com/coinlens/coinlens/internal/core"
	"github.com/coinlens/coinlens/internal/fetch"
)

var dataTypeLabels = map[core.DataType]string{
	core.DataTypeFundingRate:        "Funding Rate",
	core.DataTypeOpenInterest:       "Open Interest",
	core.DataTypeLongShortRatio:     "Long/Short Ratio",
	core.DataTypeTakerBuySellVolume: "Taker Buy/Sell Volume",
}

type dataTypeInfo struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	TimestampField string `json:"timestampField"`
}

// DataTypes handles GET /api/v1/datatypes: the closed enumeration of
// supported series, for the UI select box.
func DataTypes(w http.ResponseWriter, r *http.Request) {
	items := make([]core.Record, 0, len(dataTypeLabels))
	for _, dt := range core.DataTypes() {
		b, err := json.Marshal(dataTypeInfo{
			ID:             string(dt),
			Label:          dataTypeLabels[dt],
			TimestampField: fetch.TimestampField(dt),
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}
		items = append(items, core.Record(b))
	}
	response.OK(w, items)
}
