package webserver_test

import (
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liyue201/goqr"

	"github.com/ironsmile/artframe/src/webserver"
)

// TestQRHandler generates QR codes with different settings and then checks
// that the QR could be parsed and contains the expected address.
func TestQRHandler(t *testing.T) {
	tests := []struct {
		desc       string
		controlURL string
		query      string
		expected   string
	}{
		{
			desc:     "address from the request host",
			expected: "http://frame.local:5000/",
		},
		{
			desc:       "configured control URL",
			controlURL: "http://192.168.0.10:5000/",
			expected:   "http://192.168.0.10:5000/",
		},
		{
			desc:       "address from the query",
			controlURL: "http://192.168.0.10:5000/",
			query:      "?address=http%3A%2F%2Fexample.com%2F",
			expected:   "http://example.com/",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			h := webserver.NewQRHandler(test.controlURL)

			req := httptest.NewRequest(http.MethodGet, "/qr"+test.query, nil)
			req.Host = "frame.local:5000"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status OK but got %d", rec.Code)
			}

			qrImg, err := png.Decode(rec.Body)
			if err != nil {
				t.Fatalf("decoding PNG failed: %s", err)
			}

			qrCodes, err := goqr.Recognize(qrImg)
			if err != nil {
				t.Fatalf("unexpected QR reading error: %s", err)
			}

			if len(qrCodes) != 1 {
				t.Fatalf("expected one QR code but found %d", len(qrCodes))
			}

			qrBytes := make([]byte, 0, len(qrCodes[0].Payload))
			for _, b := range qrCodes[0].Payload {
				qrBytes = append(qrBytes, byte(b))
			}

			if string(qrBytes) != test.expected {
				t.Errorf("expected `%s` in the QR code but got `%s`", test.expected, qrBytes)
			}
		})
	}
}
