package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	messagedomain "mailflow-backend/internal/message/domain"
	messagedto "mailflow-backend/internal/message/dto"
)

// normalizeRecipients canonicalizes a delimited address list so that two
// requests with the same recipients in any order and casing produce the same
// fingerprint.
func normalizeRecipients(list string) string {
	var addrs []string
	for _, part := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if addr := strings.ToLower(strings.TrimSpace(part)); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	sort.Strings(addrs)
	return strings.Join(addrs, ",")
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// fingerprint derives the consolidation key of a request. Requests collide
// iff tenant scope, normalized recipients, normalized subject, body, and
// importance all match; header, footer, and retry settings are deliberately
// excluded.
func fingerprint(req *messagedto.SendMessageRequest) string {
	importance := messagedomain.Importance(strings.ToLower(strings.TrimSpace(req.Importance)))
	if !importance.Valid() {
		importance = messagedomain.ImportanceNormal
	}

	fields := []string{
		req.CompanyID,
		req.ApplicationID,
		strings.ToLower(strings.TrimSpace(req.From)),
		normalizeRecipients(req.To),
		normalizeRecipients(req.CC),
		normalizeRecipients(req.BCC),
		strings.ToLower(strings.TrimSpace(req.Subject)),
		digest(req.Body),
		strconv.Itoa(importance.Ordinal()),
	}
	return digest(strings.Join(fields, "|"))
}
