package engine

import (
	"fmt"

	"github.com/custodia-network/custodia/lib"
)

// setup errors: permanent for that call, never retried with the same arguments

func ErrAlreadyInitialized() lib.ErrorI {
	return lib.NewError(lib.CodeAlreadyInitialized, lib.EngineModule, lib.SetupError, "already initialized")
}

func ErrNotInitialized() lib.ErrorI {
	return lib.NewError(lib.CodeNotInitialized, lib.EngineModule, lib.SetupError, "not initialized")
}

func ErrWrongCommitteeSize(got int) lib.ErrorI {
	return lib.NewError(lib.CodeWrongCommitteeSize, lib.EngineModule, lib.SetupError,
		fmt.Sprintf("committee requires exactly %d members, got %d", CommitteeSize, got))
}

func ErrDuplicateMember(address lib.HexBytes) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateMember, lib.EngineModule, lib.SetupError,
		fmt.Sprintf("duplicate member: %s", address))
}

func ErrReadGenesisFile(err error) lib.ErrorI {
	return lib.NewError(lib.CodeReadGenesisFile, lib.EngineModule, lib.SetupError,
		fmt.Sprintf("readGenesisFile() failed with err: %s", err.Error()))
}

// authorization errors: caller must change identity or wait for unpause

func ErrNotBoardMember(address lib.HexBytes) lib.ErrorI {
	return lib.NewError(lib.CodeNotBoardMember, lib.EngineModule, lib.AuthError,
		fmt.Sprintf("%s is not a board member", address))
}

func ErrContractPaused() lib.ErrorI {
	return lib.NewError(lib.CodeContractPaused, lib.EngineModule, lib.AuthError, "contract is paused")
}

// validity errors: caller must correct the input and resubmit

func ErrInvalidAmount() lib.ErrorI {
	return lib.NewError(lib.CodeInvalidAmount, lib.EngineModule, lib.ValidityError, "amount is invalid")
}

func ErrInvalidThreshold(got, limit uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidThreshold, lib.EngineModule, lib.ValidityError,
		fmt.Sprintf("threshold %d is out of range (0, %d]", got, limit))
}

func ErrInvalidMember(address lib.HexBytes, detail string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidMember, lib.EngineModule, lib.ValidityError,
		fmt.Sprintf("invalid member %s: %s", address, detail))
}

func ErrBatchTooLarge(got int) lib.ErrorI {
	return lib.NewError(lib.CodeBatchTooLarge, lib.EngineModule, lib.ValidityError,
		fmt.Sprintf("batch size %d is out of range [1, %d]", got, MaxBatchTransfers))
}

func ErrEmptyProposal() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyProposal, lib.EngineModule, lib.ValidityError, "proposal is empty")
}

func ErrInvalidProposalKind(kind ProposalKind) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidProposalKind, lib.EngineModule, lib.ValidityError,
		fmt.Sprintf("unknown proposal kind: %s", kind))
}

func ErrAddressEmpty() lib.ErrorI {
	return lib.NewError(lib.CodeAddressEmpty, lib.EngineModule, lib.ValidityError, "address is empty")
}

func ErrAddressSize(address lib.HexBytes) lib.ErrorI {
	return lib.NewError(lib.CodeAddressSize, lib.EngineModule, lib.ValidityError,
		fmt.Sprintf("address %s is not %d bytes", address, AddressSize))
}

func ErrNotPaused() lib.ErrorI {
	return lib.NewError(lib.CodeNotPaused, lib.EngineModule, lib.ValidityError, "contract is not paused")
}

func ErrAlreadyPaused() lib.ErrorI {
	return lib.NewError(lib.CodeAlreadyPaused, lib.EngineModule, lib.ValidityError, "contract is already paused")
}

// lifecycle conflict errors: terminal for that call, never retried by the engine

func ErrProposalNotFound(id uint64) lib.ErrorI {
	return lib.NewError(lib.CodeProposalNotFound, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("proposal %d not found", id))
}

func ErrAlreadyApproved(id uint64, address lib.HexBytes) lib.ErrorI {
	return lib.NewError(lib.CodeAlreadyApproved, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("proposal %d already approved by %s", id, address))
}

func ErrAlreadyExecuted(id uint64) lib.ErrorI {
	return lib.NewError(lib.CodeAlreadyExecuted, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("proposal %d already executed", id))
}

func ErrAlreadyCancelled(id uint64) lib.ErrorI {
	return lib.NewError(lib.CodeAlreadyCancelled, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("proposal %d already cancelled", id))
}

func ErrNotApproved(id uint64, address lib.HexBytes) lib.ErrorI {
	return lib.NewError(lib.CodeNotApproved, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("proposal %d has no approval from %s", id, address))
}

func ErrProposalExpired(id uint64) lib.ErrorI {
	return lib.NewError(lib.CodeProposalExpired, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("proposal %d expired", id))
}

func ErrInsufficientApprovals(id, got, required uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientApprovals, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("proposal %d has %d of %d required approvals", id, got, required))
}

func ErrUnauthorizedCancel(id uint64, address lib.HexBytes) lib.ErrorI {
	return lib.NewError(lib.CodeUnauthorizedCancel, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("%s may not cancel proposal %d: not the proposer and below the standard threshold", address, id))
}

func ErrApprovalLedgerOverflow(id uint64) lib.ErrorI {
	return lib.NewError(lib.CodeApprovalLedgerOverflow, lib.EngineModule, lib.ConflictError,
		fmt.Sprintf("approval ledger for proposal %d is at committee capacity", id))
}

// execution effect errors: abort the whole execute transaction

func ErrTransferFailed(err error) lib.ErrorI {
	return lib.NewError(lib.CodeTransferFailed, lib.EngineModule, lib.ExecutionError,
		fmt.Sprintf("transfer failed with err: %s", err.Error()))
}

func ErrInsufficientFunds(asset string, want, have uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientFunds, lib.EngineModule, lib.ExecutionError,
		fmt.Sprintf("insufficient funds in pool %q: want %d, have %d", asset, want, have))
}

// internal errors

func ErrInvalidDBKey(key []byte) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidDBKey, lib.EngineModule, lib.InternalError,
		fmt.Sprintf("invalid db key: %v", key))
}

func ErrEmptyPolicy() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyPolicy, lib.EngineModule, lib.InternalError, "policy record is empty")
}

func ErrEmptyMode() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyMode, lib.EngineModule, lib.InternalError, "mode record is empty")
}

func ErrEmptyStats() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyStats, lib.EngineModule, lib.InternalError, "stats record is empty")
}
