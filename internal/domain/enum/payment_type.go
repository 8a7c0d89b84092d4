package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentType distinguishes money bundled with a bill from standalone
// credit repayments.
type PaymentType int

const (
	PaymentTypeSale PaymentType = 0
	PaymentTypeDue  PaymentType = 1
)

func (t PaymentType) String() string {
	names := [...]string{"Sale", "Due"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Sale"
	}
	return names[t]
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = PaymentType(i)
		return nil
	}
	switch str {
	case "Sale":
		*t = PaymentTypeSale
	case "Due":
		*t = PaymentTypeDue
	default:
		return fmt.Errorf("invalid payment type %q", str)
	}
	return nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentTypeSale
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PaymentType(v)
	case int:
		*t = PaymentType(v)
	}
	return nil
}
