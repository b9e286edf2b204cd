// Package feed defines the payload types returned by the two hospital
// feeds and transforms them into display-ready values and chart series.
package feed

import (
	"github.com/ksakamaki/hospdash/internal/errors"
)

// SnapshotRow is one day's record from the main feed. The upstream sheet
// exports Japanese column names, so JSON tags match them verbatim.
// Numeric fields are pointers: a missing column is distinguishable from
// a zero value.
type SnapshotRow struct {
	Date              string   `json:"日付"`
	BedUtilization    *float64 `json:"病床利用率 (%)"`
	AmbulanceArrivals *float64 `json:"救急車搬入数"`
	Inpatients        *float64 `json:"入院患者数"`
	PlannedDischarges *float64 `json:"退院予定数"`
	GeneralWardCensus *float64 `json:"一般病棟在院数"`
	ICUCensus         *float64 `json:"集中治療室在院数"`
	AvgStayDays       *float64 `json:"平均在院日数"`
}

// DashboardPayload is the main feed response. Rows are ordered
// chronologically ascending; the last element is the most recent day.
type DashboardPayload struct {
	Data         []SnapshotRow `json:"data"`
	LastEditTime string        `json:"lastEditTime"`
}

// Validate checks the structural invariant for a renderable payload.
func (p *DashboardPayload) Validate() error {
	if p == nil || len(p.Data) == 0 {
		return errors.New(errors.ErrValidate,
			"Feed returned no usable data",
			"The data array is missing or empty")
	}
	return nil
}

// Latest returns the most recent row. Callers must Validate first.
func (p *DashboardPayload) Latest() SnapshotRow {
	return p.Data[len(p.Data)-1]
}

// SpecialContent holds the two announcement fragments from the special
// feed. Either field may be absent; absence renders a placeholder.
type SpecialContent struct {
	// Suiyokai may contain a limited HTML fragment (<br>, simple tags).
	Suiyokai string `json:"suiyokai"`
	Keiei    string `json:"keiei"`
}

// SpecialPayload is the special feed response.
type SpecialPayload struct {
	SpecialData *SpecialContent `json:"specialData"`
}

// Validate checks that the wrapper object is present. Empty fields inside
// it are fine; a missing wrapper means the endpoint answered with the
// wrong shape entirely.
func (p *SpecialPayload) Validate() error {
	if p == nil || p.SpecialData == nil {
		return errors.New(errors.ErrValidate,
			"Special feed returned no usable data",
			"The specialData object is missing")
	}
	return nil
}
