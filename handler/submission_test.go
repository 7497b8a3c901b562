package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReceipt() map[string]interface{} {
	return map[string]interface{}{
		"name":      "Jane Doe",
		"birthDate": "19900101",
		"phone":     "01012345678",
		"email":     "jane@example.org",
	}
}

func TestDonationReceipt(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/donation-receipt", "", validReceipt())
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sent", body["emailStatus"])
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])

	require.Len(t, ts.mailer.sent, 1)
	assert.Equal(t, "jane@example.org", ts.mailer.sent[0].ReplyTo)

	receipts, err := ts.store.ListDonationReceipts()
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "Jane Doe", receipts[0].Name)
}

func TestDonationReceiptEmailFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.mailer.err = errForced

	rec := ts.request(t, http.MethodPost, "/donation-receipt", "", validReceipt())
	// store-then-notify: a degraded mail channel is not a request failure
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "failed", body["emailStatus"])
	assert.Contains(t, body["emailError"], "provider unavailable")

	receipts, err := ts.store.ListDonationReceipts()
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}

func TestDonationReceiptValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name  string
		patch map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"name": ""}},
		{"short birth date", map[string]interface{}{"birthDate": "1990010"}},
		{"non-numeric birth date", map[string]interface{}{"birthDate": "1990-1-1"}},
		{"short phone", map[string]interface{}{"phone": "0101234567"}},
		{"bad email", map[string]interface{}{"email": "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validReceipt()
			for k, v := range tc.patch {
				payload[k] = v
			}
			rec := ts.request(t, http.MethodPost, "/donation-receipt", "", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// malformed input never reaches persistence or email
	receipts, err := ts.store.ListDonationReceipts()
	require.NoError(t, err)
	assert.Empty(t, receipts)
	assert.Empty(t, ts.mailer.sent)
}

func TestDonationReceiptPhoneDigitsConfigurable(t *testing.T) {
	ts := newTestServer(t)
	ts.h.PhoneDigits = 12

	payload := validReceipt()
	payload["phone"] = "010123456789"
	rec := ts.request(t, http.MethodPost, "/donation-receipt", "", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	payload["phone"] = "01012345678"
	rec = ts.request(t, http.MethodPost, "/donation-receipt", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInquiry(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/inquiries", "", map[string]interface{}{
		"name":    "John Doe",
		"contact": "010-9876-5432",
		"email":   "john@example.org",
		"message": "How can I help?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sent", body["emailStatus"])

	require.Len(t, ts.mailer.sent, 1)
	assert.Contains(t, ts.mailer.sent[0].Body, "How can I help?")

	inquiries, err := ts.store.ListInquiries()
	require.NoError(t, err)
	assert.Len(t, inquiries, 1)
}

func TestInquiryValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/inquiries", "", map[string]interface{}{
		"name": "John Doe", "contact": "", "email": "john@example.org", "message": "hi",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(t, http.MethodPost, "/inquiries", "", map[string]interface{}{
		"name": "John Doe", "contact": "010", "email": "bad", "message": "hi",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	inquiries, err := ts.store.ListInquiries()
	require.NoError(t, err)
	assert.Empty(t, inquiries)
}
