// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coinlens/coinlens/internal/core"
)

// Meta describes the window a payload covers. EndTime echoes the
// exclusive bound exactly as the caller sent it.
type Meta struct {
	DataType                  string `json:"dataType"`
	Symbol                    string `json:"symbol"`
	StartTime                 int64  `json:"startTime"`
	EndTime                   int64  `json:"endTime"`
	RecordCount               int    `json:"recordCount"`
	TotalUniqueRecordsFetched int    `json:"totalUniqueRecordsFetched"`
	Termination               string `json:"termination"`
	Warning                   string `json:"warning,omitempty"`
}

// Payload is the envelope every endpoint answers with. Data is present
// (possibly empty) on success and absent on failure; Details is the
// diagnostic detail of a failure.
type Payload struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []core.Record `json:"data,omitempty"`
	Details string        `json:"details,omitempty"`
	Meta    *Meta         `json:"meta,omitempty"`
}

// successBody mirrors Payload but always carries the data key, so an
// empty result still encodes as "data": [].
type successBody struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []core.Record `json:"data"`
	Meta    *Meta         `json:"meta,omitempty"`
}

// failureBody carries no data key at all.
type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Series writes a successful series payload.
func Series(w http.ResponseWriter, series *core.Series) {
	meta := &Meta{
		DataType:                  string(series.DataType),
		Symbol:                    series.Symbol,
		StartTime:                 series.Window.Start,
		EndTime:                   series.Window.End,
		RecordCount:               series.RecordCount,
		TotalUniqueRecordsFetched: series.TotalUniqueFetched,
		Termination:               string(series.Termination),
		Warning:                   series.Warning,
	}

	message := "ok"
	if series.Warning != "" {
		message = "ok with warnings"
	}

	data := series.Records
	if data == nil {
		data = []core.Record{}
	}

	write(w, http.StatusOK, successBody{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// OK writes a successful payload whose data entries are built by the
// caller (e.g. the data-type listing).
func OK(w http.ResponseWriter, data []core.Record) {
	if data == nil {
		data = []core.Record{}
	}
	write(w, http.StatusOK, successBody{
		Success: true,
		Message: "ok",
		Data:    data,
	})
}

// Error writes a failure payload. The structured error's message becomes
// the primary message; its cause is carried as diagnostic detail only.
func Error(w http.ResponseWriter, status int, err error) {
	body := failureBody{
		Success: false,
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		body.Message = coreErr.Message
		if coreErr.Cause != nil {
			body.Details = coreErr.Cause.Error()
		}
	} else if err != nil {
		body.Details = err.Error()
	}

	write(w, status, body)
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
