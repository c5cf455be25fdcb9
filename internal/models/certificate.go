package models

import "time"

// CertificateKind discriminates what a gift certificate holds: a fixed
// money denomination or a bundle of session passes.
type CertificateKind string

const (
	CertificateDenomination CertificateKind = "denomination"
	CertificatePasses       CertificateKind = "passes"
)

// Certificate is a purchasable gift certificate
type Certificate struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Kind      CertificateKind `json:"kind"`
	Value     Money           `json:"value"`
	Passes    int             `json:"passes,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}
