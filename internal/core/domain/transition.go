package domain

// StepSpec describes a verification step appended by a transition.
type StepSpec struct {
	Type    StepType
	Status  StepStatus
	Message string
	// WithAnchor marks the step whose metadata carries the anchor data.
	WithAnchor bool
}

// TransitionRule is one row of the verification transition table.
type TransitionRule struct {
	From VerificationStatus
	To   VerificationStatus
	// RequiresAnchor rejects the transition unless anchor data is supplied.
	RequiresAnchor bool
	// CloseInFlight is the status applied to any IN_PROGRESS step before
	// the transition's own steps are appended.
	CloseInFlight StepStatus
	Steps         []StepSpec
}

// transitions enumerates every legal (current, next) status pair. Any pair
// absent from this table is an illegal transition.
var transitions = []TransitionRule{
	{
		From: StatusPending, To: StatusProcessing,
		Steps: []StepSpec{
			{Type: StepHashGeneration, Status: StepCompleted, Message: "document hash generated"},
			{Type: StepBlockchainSubmission, Status: StepInProgress, Message: "submitting to blockchain"},
		},
	},
	{
		From: StatusProcessing, To: StatusVerified,
		RequiresAnchor: true,
		CloseInFlight:  StepCompleted,
		Steps: []StepSpec{
			{Type: StepTransactionConfirmation, Status: StepCompleted, Message: "transaction confirmed", WithAnchor: true},
			{Type: StepVerificationComplete, Status: StepCompleted, Message: "verification complete"},
		},
	},
	{From: StatusProcessing, To: StatusFailed, CloseInFlight: StepFailed},
	{From: StatusPending, To: StatusExpired, CloseInFlight: StepFailed},
	{From: StatusProcessing, To: StatusExpired, CloseInFlight: StepFailed},
	{From: StatusVerified, To: StatusExpired},
	{From: StatusFailed, To: StatusExpired},
}

// RuleFor returns the transition rule for (from, to), or ErrIllegalTransition
// when the pair is not in the table.
func RuleFor(from, to VerificationStatus) (*TransitionRule, error) {
	for i := range transitions {
		if transitions[i].From == from && transitions[i].To == to {
			return &transitions[i], nil
		}
	}
	return nil, ErrIllegalTransition
}
