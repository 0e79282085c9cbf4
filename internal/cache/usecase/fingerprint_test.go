package usecase

import (
	"testing"

	messagedto "mailflow-backend/internal/message/dto"

	"github.com/stretchr/testify/assert"
)

func baseRequest() *messagedto.SendMessageRequest {
	return &messagedto.SendMessageRequest{
		From:          "noreply@acme.com",
		To:            "a@x.com, b@y.com",
		Subject:       "Weekly Report",
		Body:          "The report body",
		Importance:    "normal",
		CompanyID:     "acme",
		ApplicationID: "billing",
	}
}

func TestFingerprintIgnoresRecipientOrderAndCase(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.To = "B@Y.COM; a@x.com "

	assert.Equal(t, fingerprint(a), fingerprint(b))
}

func TestFingerprintIgnoresSubjectCaseAndWhitespace(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.Subject = "  WEEKLY REPORT "

	assert.Equal(t, fingerprint(a), fingerprint(b))
}

func TestFingerprintIgnoresHeaderAndFooter(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.Header = "different header"
	b.Footer = "different footer"

	assert.Equal(t, fingerprint(a), fingerprint(b))
}

func TestFingerprintDistinguishesBody(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.Body = "a different body"

	assert.NotEqual(t, fingerprint(a), fingerprint(b))
}

func TestFingerprintDistinguishesImportance(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.Importance = "high"

	assert.NotEqual(t, fingerprint(a), fingerprint(b))
}

func TestFingerprintDistinguishesTenantScope(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.CompanyID = "globex"

	assert.NotEqual(t, fingerprint(a), fingerprint(b))
}

func TestFingerprintDistinguishesRecipients(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.To = "a@x.com"

	assert.NotEqual(t, fingerprint(a), fingerprint(b))
}

func TestNormalizeRecipients(t *testing.T) {
	assert.Equal(t, "a@x.com,b@y.com", normalizeRecipients("B@Y.com; a@x.com ,"))
	assert.Equal(t, "", normalizeRecipients(" ; "))
}
