package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type BulkEditRequest struct {
	IDs   []string  `json:"ids" validate:"required,min=1,dive,required"`
	Field string    `json:"field" validate:"required"`
	Value EditValue `json:"value"`
}

type BulkStockRequest struct {
	IDs        []string `json:"ids" validate:"required,min=1,dive,required"`
	OutOfStock *bool    `json:"out_of_stock" validate:"required"`
}

// EditValue is the raw text of a bulk edit. Clients may send it as a JSON
// string, number or boolean; null and "" both clear the field.
type EditValue string

func (v *EditValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = EditValue(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = EditValue(data)
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("edit value must be a string, number or boolean")
		}
		*v = EditValue(data)
	}

	return nil
}
