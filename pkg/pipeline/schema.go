package pipeline

import (
	"fmt"

	"salesfeat/pkg/dataprep"
	"salesfeat/pkg/frame"
)

// Schema describes the structure of a dataset.
type Schema struct {
	Name    string
	Columns []string
}

// TransactionSchema is the layout of raw sale events.
var TransactionSchema = Schema{
	Name:    "transactions",
	Columns: []string{dataprep.ShopCol, dataprep.ItemCol, dataprep.MonthCol, dataprep.CountCol},
}

// GridSchema is the layout produced by dataprep.BuildGrid.
var GridSchema = Schema{
	Name:    "grid",
	Columns: []string{dataprep.ShopCol, dataprep.ItemCol, dataprep.MonthCol, dataprep.TargetCol},
}

// Validate reports the first column of the schema missing from f.
func (s Schema) Validate(f *frame.Frame) error {
	if err := f.Require(s.Columns...); err != nil {
		return fmt.Errorf("%s schema: %w", s.Name, err)
	}
	return nil
}
