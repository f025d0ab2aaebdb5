package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TicketStatus represents the lifecycle state of a parking ticket
type TicketStatus int

const (
	TicketStatusActive    TicketStatus = 0
	TicketStatusFinalized TicketStatus = 1
)

func (s TicketStatus) String() string {
	return [...]string{"Ativo", "Finalizado"}[s]
}

func (s TicketStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TicketStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TicketStatus(i)
		return nil
	}
	switch str {
	case "Ativo":
		*s = TicketStatusActive
	case "Finalizado":
		*s = TicketStatusFinalized
	}
	return nil
}

func (s TicketStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TicketStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TicketStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TicketStatus(v)
	case int:
		*s = TicketStatus(v)
	}
	return nil
}
