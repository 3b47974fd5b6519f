package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/custodia-network/custodia/engine"
	"github.com/custodia-network/custodia/lib"
	"github.com/custodia-network/custodia/store"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *engine.Engine, []lib.HexBytes) {
	db, err := store.NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	e := engine.New(lib.DefaultConfig(), db, lib.NewNullLogger())
	committee := make([]lib.HexBytes, 0, engine.CommitteeSize)
	for i := 0; i < engine.CommitteeSize; i++ {
		address := bytes.Repeat([]byte{0xAA}, engine.AddressSize-1)
		committee = append(committee, append(address, byte(i)))
	}
	require.NoError(t, e.Initialize(committee))
	return NewServer(e, lib.DefaultConfig(), lib.NewNullLogger()), e, committee
}

func post(t *testing.T, handler httprouter.Handle, body any) *httptest.ResponseRecorder {
	bz, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(bz)), nil)
	return w
}

func TestQueryRoutes(t *testing.T) {
	s, e, committee := newTestServer(t)
	require.NoError(t, e.Deposit("", 1_000))
	// fixed clock after one deposit commit
	w := httptest.NewRecorder()
	s.Height(w, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	height := new(heightResult)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), height))
	require.EqualValues(t, 2, height.Height)
	// roster carries every seat
	w = httptest.NewRecorder()
	s.Members(w, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []*engine.Member
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, engine.CommitteeSize)
	// membership check round-trips an address
	w = post(t, s.Member, addressRequest{Address: committee[0]})
	require.Equal(t, http.StatusOK, w.Code)
	member := new(memberResult)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), member))
	require.True(t, member.IsMember)
	// treasury reflects the deposit
	w = post(t, s.Treasury, assetRequest{Asset: ""})
	require.Equal(t, http.StatusOK, w.Code)
	pool := new(engine.Pool)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), pool))
	require.EqualValues(t, 1_000, pool.Amount)
}

func TestAdminRoutes(t *testing.T) {
	s, _, committee := newTestServer(t)
	// a member proposes a transfer and the auto-endorsement registers
	w := post(t, s.Propose, proposeRequest{
		Address: committee[0],
		Proposal: &engine.Proposal{
			Kind: engine.KindTransfer,
			Transfer: &engine.TransferPayload{
				Recipient: committee[1],
				Amount:    50,
			},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := new(proposeResult)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), created))
	require.EqualValues(t, 0, created.Id)
	// a second member endorses and the updated proposal is echoed back
	w = post(t, s.Endorse, proposalActionRequest{Id: created.Id, Address: committee[1]})
	require.Equal(t, http.StatusOK, w.Code)
	proposal := new(engine.Proposal)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), proposal))
	require.EqualValues(t, 2, proposal.ApprovalCount)
}

func TestAdminProposeWithoutPayload(t *testing.T) {
	s, _, committee := newTestServer(t)
	// a body that omits the proposal field entirely must come back as a
	// validity error, not bring the server down
	w := post(t, s.Propose, proposeRequest{Address: committee[0]})
	require.Equal(t, http.StatusBadRequest, w.Code)
	rpcErr := new(lib.Error)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), rpcErr))
	require.Equal(t, lib.ValidityError, rpcErr.Category())
}

func TestAdminRejectsOutsiders(t *testing.T) {
	s, _, committee := newTestServer(t)
	outsider := bytes.Repeat([]byte{0xBB}, engine.AddressSize)
	w := post(t, s.Propose, proposeRequest{
		Address: outsider,
		Proposal: &engine.Proposal{
			Kind: engine.KindTransfer,
			Transfer: &engine.TransferPayload{
				Recipient: committee[1],
				Amount:    50,
			},
		},
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	rpcErr := new(lib.Error)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), rpcErr))
	require.Equal(t, lib.AuthError, rpcErr.Category())
}

func TestRouteTableIsComplete(t *testing.T) {
	s, _, _ := newTestServer(t)
	require.NotNil(t, createRouter(s))
	require.NotNil(t, createAdminRouter(s))
	for name, route := range routePaths {
		require.NotEmpty(t, route.Method, name)
		require.NotEmpty(t, route.Path, name)
	}
}
