package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType classifies a verification-oriented document.
type DocumentType string

const (
	DocumentTypeContract    DocumentType = "CONTRACT"
	DocumentTypeCertificate DocumentType = "CERTIFICATE"
	DocumentTypeAgreement   DocumentType = "AGREEMENT"
	DocumentTypeDiploma     DocumentType = "DIPLOMA"
	DocumentTypeLicense     DocumentType = "LICENSE"
	DocumentTypeOther       DocumentType = "OTHER"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeContract, DocumentTypeCertificate, DocumentTypeAgreement,
		DocumentTypeDiploma, DocumentTypeLicense, DocumentTypeOther:
		return true
	}
	return false
}

// VerificationStatus is the document verification state.
type VerificationStatus string

const (
	StatusPending    VerificationStatus = "PENDING"
	StatusProcessing VerificationStatus = "PROCESSING"
	StatusVerified   VerificationStatus = "VERIFIED"
	StatusFailed     VerificationStatus = "FAILED"
	StatusExpired    VerificationStatus = "EXPIRED"
)

// Anchor holds the blockchain anchoring metadata persisted when a document
// reaches VERIFIED.
type Anchor struct {
	BlockchainHash  string `json:"blockchain_hash"`
	TransactionID   string `json:"transaction_id"`
	BlockNumber     string `json:"block_number"`
	NetworkID       string `json:"network_id"`
	ContractAddress string `json:"contract_address"`
}

// Empty reports whether no anchor field is set.
func (a Anchor) Empty() bool {
	return a == Anchor{}
}

// Document represents a verification-oriented document. ContentHash is
// globally unique: a second upload of identical bytes is rejected rather
// than re-stored. ShareableLink is generated at creation and immutable.
type Document struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Type          DocumentType
	FileName      string
	FileSize      int64
	MimeType      string
	ContentHash   string
	RawFilePath   string
	HashFilePath  string
	Status        VerificationStatus
	Anchor        Anchor
	VerifiedAt    *time.Time
	ShareableLink string
	UserID        uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	Status VerificationStatus
	Type   DocumentType
	Limit  int
	Offset int
}

// DocumentStats are per-user counts by verification status.
type DocumentStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Verified   int `json:"verified"`
	Failed     int `json:"failed"`
}
