package rpc

import (
	"net/http"

	"github.com/custodia-network/custodia/engine"
	"github.com/custodia-network/custodia/lib"
	"github.com/julienschmidt/httprouter"
)

// request shapes accepted by the admin routes

type proposeRequest struct {
	Address  lib.HexBytes     `json:"address"`
	Proposal *engine.Proposal `json:"proposal"`
}

type proposalActionRequest struct {
	Id      uint64       `json:"id"`
	Address lib.HexBytes `json:"address"`
}

type depositRequest struct {
	Asset  string `json:"asset"`
	Amount uint64 `json:"amount"`
}

type proposeResult struct {
	Id uint64 `json:"id"`
}

// Propose submits a new proposal on behalf of a committee member
func (s *Server) Propose(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(proposeRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	id, err := s.engine.Propose(req.Address, req.Proposal)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, &proposeResult{Id: id}, http.StatusOK)
}

// Endorse records a committee member's approval of a proposal
func (s *Server) Endorse(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.proposalAction(w, r, s.engine.Endorse)
}

// Revoke withdraws a committee member's approval of a proposal
func (s *Server) Revoke(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.proposalAction(w, r, s.engine.Revoke)
}

// Execute finalizes a proposal that has reached its quorum
func (s *Server) Execute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.proposalAction(w, r, s.engine.Execute)
}

// Cancel closes a proposal before execution
func (s *Server) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.proposalAction(w, r, s.engine.Cancel)
}

// Deposit credits the treasury pool of an asset
func (s *Server) Deposit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(depositRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	if err := s.engine.Deposit(req.Asset, req.Amount); err != nil {
		writeErr(w, err)
		return
	}
	pool, err := s.engine.Treasury(req.Asset)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, pool, http.StatusOK)
}

// proposalAction runs one of the id+address lifecycle operations and echoes the proposal back
func (s *Server) proposalAction(w http.ResponseWriter, r *http.Request, action func(uint64, lib.HexBytes) lib.ErrorI) {
	req := new(proposalActionRequest)
	if ok := s.unmarshal(w, r, req); !ok {
		return
	}
	if err := action(req.Id, req.Address); err != nil {
		writeErr(w, err)
		return
	}
	proposal, err := s.engine.GetProposal(req.Id)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, proposal, http.StatusOK)
}
