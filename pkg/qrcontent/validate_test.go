package qrcontent_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/pkg/validator"
)

func TestValidateEmptyContent(t *testing.T) {
	t.Parallel()

	// Number of required-field rules per type.
	want := map[qrcontent.ContentType][]string{
		qrcontent.TypeURL:      {"URL is required"},
		qrcontent.TypeText:     {"Text is required"},
		qrcontent.TypeWiFi:     {"Network name (SSID) is required", "Password is required for protected networks"},
		qrcontent.TypeVCard:    {"First name is required", "Last name is required"},
		qrcontent.TypeSMS:      {"Phone number is required", "Message is required"},
		qrcontent.TypeWhatsApp: {"Phone number is required", "Message is required"},
		qrcontent.TypeEmail:    {"Email is required"},
		qrcontent.TypePhone:    {"Phone number is required"},
		qrcontent.TypeLocation: {"Coordinates are required"},
		qrcontent.TypeEvent:    {"Event title is required", "Start date is required"},
		qrcontent.TypePix:      {"PIX key is required", "Beneficiary name is required", "City is required"},
	}
	require.Len(t, want, len(qrcontent.Types()))

	for _, typ := range qrcontent.Types() {
		t.Run(typ.String(), func(t *testing.T) {
			t.Parallel()
			c, err := qrcontent.New(typ)
			require.NoError(t, err)

			res := qrcontent.Validate(c)
			assert.False(t, res.Valid)
			assert.Equal(t, want[typ], res.Errors)

			fromFields := qrcontent.ValidateFields(typ, qrcontent.Fields{})
			assert.Equal(t, res.Errors, fromFields.Errors)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content qrcontent.Content
		errors  []string
	}{
		{"url ok", &qrcontent.URL{URL: "x.com"}, nil},
		{"url blank", &qrcontent.URL{URL: "   "}, []string{"URL is required"}},
		{"text ok", &qrcontent.Text{Text: "hi"}, nil},
		{"text whitespace", &qrcontent.Text{Text: "\n\t"}, []string{"Text is required"}},
		{
			"wifi nopass waives password",
			&qrcontent.WiFi{SSID: "Cafe", Security: qrcontent.WiFiNoPass},
			nil,
		},
		{
			"wifi wpa requires password",
			&qrcontent.WiFi{SSID: "Cafe", Security: qrcontent.WiFiWPA},
			[]string{"Password is required for protected networks"},
		},
		{
			"wifi blank password",
			&qrcontent.WiFi{SSID: "Cafe", Password: "  ", Security: qrcontent.WiFiWEP},
			[]string{"Password is required for protected networks"},
		},
		{"vcard ok", &qrcontent.VCard{FirstName: "A", LastName: "B"}, nil},
		{"vcard last name missing", &qrcontent.VCard{FirstName: "A"}, []string{"Last name is required"}},
		{"sms message missing", &qrcontent.SMS{Phone: "1"}, []string{"Message is required"}},
		{"whatsapp phone missing", &qrcontent.WhatsApp{Message: "hi"}, []string{"Phone number is required"}},
		{"phone ok without message", &qrcontent.Phone{Phone: "123"}, nil},
		{"email ok", &qrcontent.Email{Email: "a@b.com"}, nil},
		{"email malformed", &qrcontent.Email{Email: "a@b"}, []string{"Email is invalid"}},
		{"email whitespace", &qrcontent.Email{Email: "   "}, []string{"Email is required", "Email is invalid"}},
		{"location zero is valid", &qrcontent.Location{Latitude: ptr(0.0), Longitude: ptr(0.0)}, nil},
		{"location missing longitude", &qrcontent.Location{Latitude: ptr(1.0)}, []string{"Coordinates are required"}},
		{"event ok", &qrcontent.Event{Title: "t", StartDate: "2024-01-01"}, nil},
		{"event missing start", &qrcontent.Event{Title: "t"}, []string{"Start date is required"}},
		{"pix city missing", &qrcontent.Pix{Key: "k", Name: "n", City: " "}, []string{"City is required"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := qrcontent.Validate(tt.content)
			if tt.errors == nil {
				assert.True(t, res.Valid)
				assert.Empty(t, res.Errors)
				assert.NoError(t, res.Err())
				return
			}
			assert.False(t, res.Valid)
			assert.Equal(t, tt.errors, res.Errors)
		})
	}
}

func TestValidateNil(t *testing.T) {
	t.Parallel()

	res := qrcontent.Validate(nil)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Content is required"}, res.Errors)
}

func TestValidateFields(t *testing.T) {
	t.Parallel()

	t.Run("unknown type is not validated", func(t *testing.T) {
		t.Parallel()
		res := qrcontent.ValidateFields("bogus", qrcontent.Fields{})
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("blank numeric strings count as missing", func(t *testing.T) {
		t.Parallel()
		res := qrcontent.ValidateFields(qrcontent.TypeLocation, qrcontent.Fields{
			"latitude":  "",
			"longitude": "10",
		})
		assert.Equal(t, []string{"Coordinates are required"}, res.Errors)
	})

	t.Run("malformed values are reported", func(t *testing.T) {
		t.Parallel()
		res := qrcontent.ValidateFields(qrcontent.TypeLocation, qrcontent.Fields{
			"latitude":  "north",
			"longitude": 10,
		})
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
	})
}

func TestResultErr(t *testing.T) {
	t.Parallel()

	res := qrcontent.Validate(&qrcontent.Pix{})
	err := res.Err()
	require.Error(t, err)

	assert.True(t, errors.Is(err, qrcontent.ErrValidation))
	assert.False(t, errors.Is(err, qrcontent.ErrUnsupportedType))
	assert.Len(t, validator.ExtractValidationErrors(err), 3)

	var verr *qrcontent.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, qrcontent.TypePix, verr.Type)
	assert.Equal(t, res.Errors, verr.Messages())
	assert.Equal(t, []string{"key", "name", "city"}, verr.Fields.Fields())
}
