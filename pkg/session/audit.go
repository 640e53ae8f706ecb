// Package session implements the client-held audit token: a signed record of
// when a session last mutated registry state. The service stores nothing per
// session, so horizontal scaling needs no session affinity; the client returns
// the token on each request and tampering is caught by the signature.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrEmptySigningKey is returned by NewAuditTracker when no key is configured
var ErrEmptySigningKey = errors.New("audit signing key must not be empty")

// AuditTracker issues and verifies the signed session tokens
// Integrity comes from a keyed HMAC, not encryption: the payload is only a
// timestamp and is not confidential
type AuditTracker struct {
	key []byte
	now func() time.Time
}

// payload is the signed token body
type payload struct {
	SessionID  string `json:"sid"`
	LastUpdate int64  `json:"ts"`
}

// NewAuditTracker creates a new AuditTracker signing with key
func NewAuditTracker(key string) (*AuditTracker, error) {
	if key == "" {
		return nil, ErrEmptySigningKey
	}
	return &AuditTracker{
		key: []byte(key),
		now: time.Now,
	}, nil
}

// WithClock overrides the tracker's clock, for tests
func (a *AuditTracker) WithClock(now func() time.Time) *AuditTracker {
	a.now = now
	return a
}

// RecordUpdate returns a fresh token for the session carried by token,
// stamped with the current time. An absent or invalid token starts a new
// session rather than failing.
// The embedded timestamp never moves backwards for a given session, even if
// the wall clock does.
func (a *AuditTracker) RecordUpdate(token string) (string, error) {
	p, ok := a.decode(token)
	if !ok {
		p = payload{SessionID: uuid.NewString()}
	}

	ts := a.now().UnixNano()
	if ts < p.LastUpdate {
		ts = p.LastUpdate
	}
	p.LastUpdate = ts

	return a.encode(p)
}

// LastUpdate returns the timestamp embedded in token
// The bool is false when the session has no prior record: token absent,
// unparsable, or failing signature verification. Verification failure is an
// audit hint degrading to "never", not an error
func (a *AuditTracker) LastUpdate(token string) (time.Time, bool) {
	p, ok := a.decode(token)
	if !ok || p.LastUpdate == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, p.LastUpdate), true
}

// encode serializes and signs p as "base64(body).base64(signature)"
func (a *AuditTracker) encode(p payload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(body) + "." +
		base64.RawURLEncoding.EncodeToString(a.sign(body)), nil
}

// decode parses and verifies token, returning false on any defect
func (a *AuditTracker) decode(token string) (payload, bool) {
	if token == "" {
		return payload{}, false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return payload{}, false
	}

	body, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return payload{}, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return payload{}, false
	}

	if !hmac.Equal(sig, a.sign(body)) {
		logrus.Debug("audit token failed signature verification, treating session as new")
		return payload{}, false
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return payload{}, false
	}
	if p.SessionID == "" {
		return payload{}, false
	}

	return p, true
}

// sign computes the HMAC-SHA256 signature of body
func (a *AuditTracker) sign(body []byte) []byte {
	mac := hmac.New(sha256.New, a.key)
	mac.Write(body)
	return mac.Sum(nil)
}
