package lib

import (
	"fmt"
)

// ErrorI is the typed error surface every module of the engine returns.
// Each error carries a stable numeric code, the module it originated from,
// and the recovery category external tooling uses to present actionable
// messages.
type ErrorI interface {
	Code() ErrorCode         // returns the error code
	Module() ErrorModule     // returns the error module
	Category() ErrorCategory // returns the recovery category
	error                    // implements the built-in error interface
}

var _ ErrorI = &Error{} // ensures *Error implements ErrorI

type ErrorCode uint32 // defines a type for error codes

type ErrorModule string // defines a type for error modules

type ErrorCategory string // defines a type for error recovery categories

type Error struct {
	ECode     ErrorCode     `json:"code"`     // error code
	EModule   ErrorModule   `json:"module"`   // error module
	ECategory ErrorCategory `json:"category"` // error recovery category
	Msg       string        `json:"msg"`      // error message
}

func NewError(code ErrorCode, module ErrorModule, category ErrorCategory, msg string) *Error {
	// constructs a new Error instance
	return &Error{ECode: code, EModule: module, ECategory: category, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns the module field
func (p *Error) Module() ErrorModule { return p.EModule }

// Category() returns the recovery category field
func (p *Error) Category() ErrorCategory { return p.ECategory }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code, category and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:   %s\nCode:     %d\nCategory: %s\nMessage:  %s", p.EModule, p.ECode, p.ECategory, p.Msg)
}

const (
	// Error recovery categories: every error the system produces falls in
	// exactly one and the category dictates what the caller may do next.
	SetupError     ErrorCategory = "setup"         // permanent for that call; do not retry with the same arguments
	AuthError      ErrorCategory = "authorization" // caller must change identity or wait for unpause
	ValidityError  ErrorCategory = "validity"      // caller must correct the input and resubmit
	ConflictError  ErrorCategory = "conflict"      // lifecycle conflict; terminal for that call
	ExecutionError ErrorCategory = "execution"     // the side effect failed; the whole operation rolled back
	InternalError  ErrorCategory = "internal"      // codec / storage faults

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeJSONMarshal   ErrorCode = 1
	CodeJSONUnmarshal ErrorCode = 2
	CodeStringToBytes ErrorCode = 3
	CodeWriteFile     ErrorCode = 4
	CodeReadFile      ErrorCode = 5
	CodeEmptyTracker  ErrorCode = 6

	// Engine Module
	EngineModule ErrorModule = "engine"

	// Engine Module Error Codes: setup
	CodeAlreadyInitialized ErrorCode = 1
	CodeNotInitialized     ErrorCode = 2
	CodeWrongCommitteeSize ErrorCode = 3
	CodeDuplicateMember    ErrorCode = 4
	CodeReadGenesisFile    ErrorCode = 5
	CodeUnmarshalGenesis   ErrorCode = 6

	// Engine Module Error Codes: authorization
	CodeNotBoardMember ErrorCode = 10
	CodeContractPaused ErrorCode = 11

	// Engine Module Error Codes: validity
	CodeInvalidAmount       ErrorCode = 20
	CodeInvalidThreshold    ErrorCode = 21
	CodeInvalidMember       ErrorCode = 22
	CodeBatchTooLarge       ErrorCode = 23
	CodeInvalidProposalKind ErrorCode = 24
	CodeAddressEmpty        ErrorCode = 25
	CodeAddressSize         ErrorCode = 26
	CodeNotPaused           ErrorCode = 27
	CodeAlreadyPaused       ErrorCode = 28
	CodeEmptyProposal       ErrorCode = 29

	// Engine Module Error Codes: lifecycle conflict
	CodeProposalNotFound       ErrorCode = 30
	CodeAlreadyApproved        ErrorCode = 31
	CodeAlreadyExecuted        ErrorCode = 32
	CodeAlreadyCancelled       ErrorCode = 33
	CodeNotApproved            ErrorCode = 34
	CodeProposalExpired        ErrorCode = 35
	CodeInsufficientApprovals  ErrorCode = 36
	CodeUnauthorizedCancel     ErrorCode = 37
	CodeApprovalLedgerOverflow ErrorCode = 38

	// Engine Module Error Codes: execution effect
	CodeTransferFailed    ErrorCode = 40
	CodeInsufficientFunds ErrorCode = 41

	// Engine Module Error Codes: internal
	CodeInvalidDBKey ErrorCode = 50
	CodeEmptyPolicy  ErrorCode = 51
	CodeEmptyMode    ErrorCode = 52
	CodeEmptyStats   ErrorCode = 53

	// Storage Module
	StorageModule ErrorModule = "store"

	// Storage Module Error Codes
	CodeOpenDB      ErrorCode = 1
	CodeCloseDB     ErrorCode = 2
	CodeCommitDB    ErrorCode = 3
	CodeStoreSet    ErrorCode = 4
	CodeStoreGet    ErrorCode = 5
	CodeStoreDelete ErrorCode = 6
	CodeNilKey      ErrorCode = 7

	// RPC Module
	RPCModule ErrorModule = "rpc"

	// RPC Module Error Codes
	CodeRPCTimeout    ErrorCode = 1
	CodeRPCBadRequest ErrorCode = 2
	CodeRPCPostFailed ErrorCode = 3
)

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, InternalError, fmt.Sprintf("jsonMarshal() failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, InternalError, fmt.Sprintf("jsonUnmarshal() failed with err: %s", err.Error()))
}

func ErrStringToBytes(err error) ErrorI {
	return NewError(CodeStringToBytes, MainModule, ValidityError, fmt.Sprintf("stringToBytes() failed with err: %s", err.Error()))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, InternalError, fmt.Sprintf("writeFile() failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, InternalError, fmt.Sprintf("readFile() failed with err: %s", err.Error()))
}

func ErrEmptyEventsTracker() ErrorI {
	return NewError(CodeEmptyTracker, MainModule, InternalError, "events tracker is empty")
}

func ErrServerTimeout() ErrorI {
	return NewError(CodeRPCTimeout, RPCModule, InternalError, "server timeout")
}

func ErrRPCBadRequest(status string, body []byte) ErrorI {
	return NewError(CodeRPCBadRequest, RPCModule, ValidityError, fmt.Sprintf("rpc request failed with status %s: %s", status, body))
}

func ErrRPCPostFailed(err error) ErrorI {
	return NewError(CodeRPCPostFailed, RPCModule, InternalError, fmt.Sprintf("rpc post failed with err: %s", err.Error()))
}
