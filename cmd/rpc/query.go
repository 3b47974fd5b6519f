package rpc

import (
	"net/http"

	"github.com/custodia-network/custodia/lib"
	"github.com/julienschmidt/httprouter"
)

// request shapes accepted by the query routes

type addressRequest struct {
	Address lib.HexBytes `json:"address"`
}

type idRequest struct {
	Id uint64 `json:"id"`
}

type accountRequest struct {
	Address lib.HexBytes `json:"address"`
	Asset   string       `json:"asset"`
}

type assetRequest struct {
	Asset string `json:"asset"`
}

type heightRequest struct {
	Height uint64 `json:"height"`
}

type proposalsRequest struct {
	StartId uint64 `json:"startId"`
	Limit   int    `json:"limit"`
}

type heightResult struct {
	Height uint64 `json:"height"`
}

type memberResult struct {
	Address  lib.HexBytes `json:"address"`
	IsMember bool         `json:"isMember"`
}

// Version responds with the software version
func (s *Server) Version(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, SoftwareVersion, http.StatusOK)
}

// Height responds with the engine's logical clock
func (s *Server) Height(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, &heightResult{Height: s.engine.Height()}, http.StatusOK)
}

// Member responds with the committee membership status of an address
func (s *Server) Member(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(addressRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	isMember, err := s.engine.IsMember(req.Address)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, &memberResult{Address: req.Address, IsMember: isMember}, http.StatusOK)
}

// Members responds with the full committee roster
func (s *Server) Members(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	members, err := s.engine.Members()
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, members, http.StatusOK)
}

// Proposal responds with a single proposal by id
func (s *Server) Proposal(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(idRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	proposal, err := s.engine.GetProposal(req.Id)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, proposal, http.StatusOK)
}

// Proposals responds with a page of proposals ordered by id
func (s *Server) Proposals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(proposalsRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	proposals, err := s.engine.Proposals(req.StartId, req.Limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, proposals, http.StatusOK)
}

// Approvals responds with the endorsement roster of a proposal
func (s *Server) Approvals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(idRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	approvals, err := s.engine.GetApprovals(req.Id)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, approvals, http.StatusOK)
}

// Policy responds with the active threshold policy
func (s *Server) Policy(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	policy, err := s.engine.GetPolicy()
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, policy, http.StatusOK)
}

// Stats responds with the lifecycle counters, pending included
func (s *Server) Stats(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	stats, err := s.engine.GetStats()
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, stats, http.StatusOK)
}

// Mode responds with the initialization and pause flags
func (s *Server) Mode(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	mode, err := s.engine.GetMode()
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, mode, http.StatusOK)
}

// Account responds with the balance of an address for an asset
func (s *Server) Account(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(accountRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	account, err := s.engine.GetAccount(req.Address, req.Asset)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, account, http.StatusOK)
}

// Treasury responds with the custodied pool balance for an asset
func (s *Server) Treasury(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(assetRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	pool, err := s.engine.Treasury(req.Asset)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, pool, http.StatusOK)
}

// EventsByHeight responds with the events recorded at a logical clock value
func (s *Server) EventsByHeight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(heightRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	events, err := s.engine.EventsByHeight(req.Height)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, events, http.StatusOK)
}

// State responds with a genesis-shaped export of the current state
func (s *Server) State(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	state, err := s.engine.ExportState()
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, state, http.StatusOK)
}
