package qrcontent

// ContentType identifies the kind of data carried by a QR code.
type ContentType string

const (
	TypeURL      ContentType = "url"
	TypeText     ContentType = "text"
	TypeWiFi     ContentType = "wifi"
	TypeVCard    ContentType = "vcard"
	TypeSMS      ContentType = "sms"
	TypeWhatsApp ContentType = "whatsapp"
	TypeEmail    ContentType = "email"
	TypePhone    ContentType = "phone"
	TypeLocation ContentType = "location"
	TypeEvent    ContentType = "event"
	TypePix      ContentType = "pix"
)

var allTypes = []ContentType{
	TypeURL,
	TypeText,
	TypeWiFi,
	TypeVCard,
	TypeSMS,
	TypeWhatsApp,
	TypeEmail,
	TypePhone,
	TypeLocation,
	TypeEvent,
	TypePix,
}

// Types returns every supported content type in declaration order.
func Types() []ContentType {
	out := make([]ContentType, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t ContentType) String() string { return string(t) }

// ParseContentType converts s into a ContentType. Matching is case-sensitive.
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if !t.Valid() {
		return "", &UnsupportedTypeError{Type: s}
	}
	return t, nil
}
