package qrcontent

import (
	"math"
	"strings"
)

// Encode returns the exact text to embed in the QR code for c.
// It fails only when c is not one of the package's content types.
func Encode(c Content) (string, error) {
	switch v := c.(type) {
	case *URL:
		return encodeURL(orZero(v)), nil
	case *Text:
		return orZero(v).Text, nil
	case *WiFi:
		return encodeWiFi(orZero(v)), nil
	case *VCard:
		return encodeVCard(orZero(v)), nil
	case *SMS:
		return encodeSMS(orZero(v)), nil
	case *WhatsApp:
		return encodeWhatsApp(orZero(v)), nil
	case *Email:
		return encodeEmail(orZero(v)), nil
	case *Phone:
		return "tel:" + orZero(v).Phone, nil
	case *Location:
		return encodeLocation(orZero(v)), nil
	case *Event:
		return encodeEvent(orZero(v)), nil
	case *Pix:
		return encodePix(orZero(v)), nil
	case nil:
		return "", &UnsupportedTypeError{}
	default:
		return "", &UnsupportedTypeError{Type: string(c.Type())}
	}
}

// EncodeFields decodes a field bag for t and encodes it.
func EncodeFields(t ContentType, f Fields) (string, error) {
	c, err := Decode(t, f)
	if err != nil {
		return "", err
	}
	return Encode(c)
}

func encodeURL(c URL) string {
	if strings.HasPrefix(c.URL, "http://") || strings.HasPrefix(c.URL, "https://") {
		return c.URL
	}
	return "https://" + c.URL
}

func encodeWiFi(c WiFi) string {
	hidden := "false"
	if c.Hidden {
		hidden = "true"
	}
	return "WIFI:T:" + string(c.Security) + ";S:" + c.SSID + ";P:" + c.Password + ";H:" + hidden + ";;"
}

func encodeVCard(c VCard) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + c.FirstName + " " + c.LastName,
		"N:" + c.LastName + ";" + c.FirstName + ";;;",
	}
	if c.Organization != "" {
		lines = append(lines, "ORG:"+c.Organization)
	}
	if c.Phone != "" {
		lines = append(lines, "TEL:"+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, "EMAIL:"+c.Email)
	}
	if c.URL != "" {
		lines = append(lines, "URL:"+c.URL)
	}
	if c.Address != "" {
		lines = append(lines, "ADR:;;"+c.Address+";;;;")
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}

func encodeSMS(c SMS) string {
	return "sms:" + c.Phone + "?body=" + escapeComponent(c.Message)
}

func encodeWhatsApp(c WhatsApp) string {
	return "https://wa.me/" + digitsOnly(c.Phone) + "?text=" + escapeComponent(c.Message)
}

func encodeEmail(c Email) string {
	var params []string
	if c.Subject != "" {
		params = append(params, "subject="+escapeComponent(c.Subject))
	}
	if c.Body != "" {
		params = append(params, "body="+escapeComponent(c.Body))
	}
	out := "mailto:" + c.Email
	if len(params) > 0 {
		out += "?" + strings.Join(params, "&")
	}
	return out
}

func encodeLocation(c Location) string {
	point := formatNumber(orZero(c.Latitude)) + "," + formatNumber(orZero(c.Longitude))
	if c.Name != "" {
		return "geo:" + point + "?q=" + point + "(" + escapeComponent(c.Name) + ")"
	}
	return "geo:" + point
}

func encodeEvent(c Event) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"SUMMARY:" + c.Title,
		"DTSTART:" + formatCalendarDate(c.StartDate),
	}
	if c.EndDate != "" {
		lines = append(lines, "DTEND:"+formatCalendarDate(c.EndDate))
	}
	if c.Location != "" {
		lines = append(lines, "LOCATION:"+c.Location)
	}
	if c.Description != "" {
		lines = append(lines, "DESCRIPTION:"+c.Description)
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	return strings.Join(lines, "\n")
}

// encodePix builds the simplified EMV-like PIX payload. The merchant category
// (52), currency (53) and amount (54) segments are fixed text with the amount
// appended unprefixed, and no CRC (63) segment is produced.
func encodePix(c Pix) string {
	amount := "0.00"
	if c.Amount != nil && *c.Amount != 0 && !math.IsNaN(*c.Amount) {
		amount = toFixed2(*c.Amount)
	}

	var b strings.Builder
	b.WriteString("000201")
	b.WriteString("010212")
	b.WriteString(lengthPrefixed("26", c.Key))
	b.WriteString("52040000")
	b.WriteString("5303986")
	b.WriteString("54" + amount)
	b.WriteString(lengthPrefixed("59", c.Name))
	b.WriteString(lengthPrefixed("60", c.City))
	if c.Description != "" {
		b.WriteString(lengthPrefixed("62", c.Description))
	}
	return b.String()
}
