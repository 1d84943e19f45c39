package qrcontent

// Content is implemented by the per-type content structs of this package only.
type Content interface {
	Type() ContentType
	sealed()
}

// WiFiSecurity is the authentication mode advertised in a WIFI: payload.
type WiFiSecurity string

const (
	WiFiWPA    WiFiSecurity = "WPA"
	WiFiWEP    WiFiSecurity = "WEP"
	WiFiNoPass WiFiSecurity = "nopass"
)

// URL is a web link. Title is descriptive metadata and is not encoded.
type URL struct {
	URL   string `json:"url" mapstructure:"url"`
	Title string `json:"title,omitempty" mapstructure:"title"`
}

// Text is free-form text embedded verbatim.
type Text struct {
	Text string `json:"text" mapstructure:"text"`
}

// WiFi holds network join credentials.
type WiFi struct {
	SSID     string       `json:"ssid" mapstructure:"ssid"`
	Password string       `json:"password,omitempty" mapstructure:"password"`
	Security WiFiSecurity `json:"security" mapstructure:"security"`
	Hidden   bool         `json:"hidden,omitempty" mapstructure:"hidden"`
}

// VCard is a contact card.
type VCard struct {
	FirstName    string `json:"firstName" mapstructure:"firstName"`
	LastName     string `json:"lastName" mapstructure:"lastName"`
	Organization string `json:"organization,omitempty" mapstructure:"organization"`
	Phone        string `json:"phone,omitempty" mapstructure:"phone"`
	Email        string `json:"email,omitempty" mapstructure:"email"`
	URL          string `json:"url,omitempty" mapstructure:"url"`
	Address      string `json:"address,omitempty" mapstructure:"address"`
}

// SMS is a prefilled text message.
type SMS struct {
	Phone   string `json:"phone" mapstructure:"phone"`
	Message string `json:"message" mapstructure:"message"`
}

// WhatsApp is a prefilled WhatsApp chat.
type WhatsApp struct {
	Phone   string `json:"phone" mapstructure:"phone"`
	Message string `json:"message" mapstructure:"message"`
}

// Email is a prefilled email draft.
type Email struct {
	Email   string `json:"email" mapstructure:"email"`
	Subject string `json:"subject,omitempty" mapstructure:"subject"`
	Body    string `json:"body,omitempty" mapstructure:"body"`
}

// Phone is a number to dial.
type Phone struct {
	Phone string `json:"phone" mapstructure:"phone"`
}

// Location is a geographic point. Nil coordinates mean "not provided";
// zero is a valid coordinate.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty" mapstructure:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" mapstructure:"longitude"`
	Name      string   `json:"name,omitempty" mapstructure:"name"`
}

// Event is a calendar entry. Dates are caller supplied date-time strings.
type Event struct {
	Title       string `json:"title" mapstructure:"title"`
	StartDate   string `json:"startDate" mapstructure:"startDate"`
	EndDate     string `json:"endDate,omitempty" mapstructure:"endDate"`
	Location    string `json:"location,omitempty" mapstructure:"location"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// Pix is a Brazilian instant-payment request.
type Pix struct {
	Key         string   `json:"key" mapstructure:"key"`
	Name        string   `json:"name" mapstructure:"name"`
	City        string   `json:"city" mapstructure:"city"`
	Amount      *float64 `json:"amount,omitempty" mapstructure:"amount"`
	Description string   `json:"description,omitempty" mapstructure:"description"`
}

func (*URL) Type() ContentType      { return TypeURL }
func (*Text) Type() ContentType     { return TypeText }
func (*WiFi) Type() ContentType     { return TypeWiFi }
func (*VCard) Type() ContentType    { return TypeVCard }
func (*SMS) Type() ContentType      { return TypeSMS }
func (*WhatsApp) Type() ContentType { return TypeWhatsApp }
func (*Email) Type() ContentType    { return TypeEmail }
func (*Phone) Type() ContentType    { return TypePhone }
func (*Location) Type() ContentType { return TypeLocation }
func (*Event) Type() ContentType    { return TypeEvent }
func (*Pix) Type() ContentType      { return TypePix }

func (*URL) sealed()      {}
func (*Text) sealed()     {}
func (*WiFi) sealed()     {}
func (*VCard) sealed()    {}
func (*SMS) sealed()      {}
func (*WhatsApp) sealed() {}
func (*Email) sealed()    {}
func (*Phone) sealed()    {}
func (*Location) sealed() {}
func (*Event) sealed()    {}
func (*Pix) sealed()      {}

// New returns an empty content value for t.
func New(t ContentType) (Content, error) {
	switch t {
	case TypeURL:
		return &URL{}, nil
	case TypeText:
		return &Text{}, nil
	case TypeWiFi:
		return &WiFi{}, nil
	case TypeVCard:
		return &VCard{}, nil
	case TypeSMS:
		return &SMS{}, nil
	case TypeWhatsApp:
		return &WhatsApp{}, nil
	case TypeEmail:
		return &Email{}, nil
	case TypePhone:
		return &Phone{}, nil
	case TypeLocation:
		return &Location{}, nil
	case TypeEvent:
		return &Event{}, nil
	case TypePix:
		return &Pix{}, nil
	default:
		return nil, &UnsupportedTypeError{Type: string(t)}
	}
}

// orZero dereferences p, or returns the zero value when p is nil.
func orZero[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
