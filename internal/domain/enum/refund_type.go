package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RefundType classifies how a return's value was settled: credited against
// the customer's outstanding balance, paid back in cash, or both.
type RefundType int

const (
	RefundTypeAdjustedToDue RefundType = 0
	RefundTypeCashBack      RefundType = 1
	RefundTypeMixed         RefundType = 2
)

func (t RefundType) String() string {
	names := [...]string{"AdjustedToDue", "CashBack", "Mixed"}
	if int(t) < 0 || int(t) >= len(names) {
		return "AdjustedToDue"
	}
	return names[t]
}

func (t RefundType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RefundType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = RefundType(i)
		return nil
	}
	switch str {
	case "AdjustedToDue":
		*t = RefundTypeAdjustedToDue
	case "CashBack":
		*t = RefundTypeCashBack
	case "Mixed":
		*t = RefundTypeMixed
	default:
		return fmt.Errorf("invalid refund type %q", str)
	}
	return nil
}

func (t RefundType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *RefundType) Scan(value interface{}) error {
	if value == nil {
		*t = RefundTypeAdjustedToDue
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = RefundType(v)
	case int:
		*t = RefundType(v)
	}
	return nil
}
