package schema

import (
	"encoding/json"
	"errors"
)

// Mail is the queued form of mail.Message.
type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m *Mail) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *Mail) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	if m.To == "" {
		return errors.New("mail recipient is empty")
	}
	return nil
}
