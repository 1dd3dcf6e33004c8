package domain

import (
	"time"

	"github.com/google/uuid"
)

// StepType identifies a stage of the verification pipeline.
type StepType string

const (
	StepFileUpload              StepType = "FILE_UPLOAD"
	StepHashGeneration          StepType = "HASH_GENERATION"
	StepBlockchainSubmission    StepType = "BLOCKCHAIN_SUBMISSION"
	StepTransactionConfirmation StepType = "TRANSACTION_CONFIRMATION"
	StepVerificationComplete    StepType = "VERIFICATION_COMPLETE"
)

// StepStatus is the state of a single verification step.
type StepStatus string

const (
	StepInProgress StepStatus = "IN_PROGRESS"
	StepCompleted  StepStatus = "COMPLETED"
	StepFailed     StepStatus = "FAILED"
)

// VerificationStep is one entry of a document's append-only, time-ordered
// step log. Only status, message and CompletedAt may change after insert.
type VerificationStep struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Type        StepType
	Status      StepStatus
	Message     string
	Metadata    map[string]any
	StartedAt   time.Time
	CompletedAt *time.Time
}
