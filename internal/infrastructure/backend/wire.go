package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// Formatos de fecha que emite el backend: ISO con zona, ISO "naive" y fecha sola.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTime interpreta fechas sin zona como UTC.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("backend: fecha no reconocida %q", s)
}

// flexTime fecha opcional tolerante a los formatos del backend.
type flexTime struct {
	t *time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		f.t = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		f.t = nil
		return nil
	}
	t, err := parseTime(s)
	if err != nil {
		return err
	}
	f.t = &t
	return nil
}

// Ptr devuelve la fecha o nil.
func (f flexTime) Ptr() *time.Time { return f.t }

// flexString acepta texto o número (p. ej. vehicle_year, external_id).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// wireAddress dirección con los alias de cada origen (BigCommerce, Wave).
// Puede llegar como objeto o como texto plano.
type wireAddress struct {
	Line1      string `json:"line1"`
	Address1   string `json:"address1"`
	Line2      string `json:"line2"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Zip        string `json:"zip"`
	Country    string `json:"country"`
}

func (a *wireAddress) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = wireAddress{Line1: s}
		return nil
	}
	type plain wireAddress
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = wireAddress(p)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func isNull(b []byte) bool {
	return len(b) == 0 || bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func filePartHeader(field, filename, contentType string) textproto.MIMEHeader {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	return h
}
