package rpc

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/custodia-network/custodia/engine"
	"github.com/custodia-network/custodia/lib"
)

// Client is a thin HTTP wrapper over the query and admin RPC surfaces.
// Transient transport failures are retried with exponential backoff;
// application errors come back typed and are never retried.
type Client struct {
	rpcURL    string
	rpcPort   string
	adminPort string
	client    http.Client
}

func NewClient(rpcURL, rpcPort, adminPort string) *Client {
	return &Client{rpcURL: rpcURL, rpcPort: rpcPort, adminPort: adminPort, client: http.Client{}}
}

func (c *Client) Version() (version *string, err lib.ErrorI) {
	version = new(string)
	err = c.get(VersionRouteName, version)
	return
}

func (c *Client) Height() (p *heightResult, err lib.ErrorI) {
	p = new(heightResult)
	err = c.post(HeightRouteName, nil, p)
	return
}

func (c *Client) Member(address lib.HexBytes) (p *memberResult, err lib.ErrorI) {
	p = new(memberResult)
	err = c.post(MemberRouteName, addressRequest{Address: address}, p)
	return
}

func (c *Client) Members() (p *[]*engine.Member, err lib.ErrorI) {
	p = new([]*engine.Member)
	err = c.post(MembersRouteName, nil, p)
	return
}

func (c *Client) Proposal(id uint64) (p *engine.Proposal, err lib.ErrorI) {
	p = new(engine.Proposal)
	err = c.post(ProposalRouteName, idRequest{Id: id}, p)
	return
}

func (c *Client) Proposals(startId uint64, limit int) (p *[]*engine.Proposal, err lib.ErrorI) {
	p = new([]*engine.Proposal)
	err = c.post(ProposalsRouteName, proposalsRequest{StartId: startId, Limit: limit}, p)
	return
}

func (c *Client) Approvals(id uint64) (p *engine.Approvals, err lib.ErrorI) {
	p = new(engine.Approvals)
	err = c.post(ApprovalsRouteName, idRequest{Id: id}, p)
	return
}

func (c *Client) Policy() (p *engine.Policy, err lib.ErrorI) {
	p = new(engine.Policy)
	err = c.post(PolicyRouteName, nil, p)
	return
}

func (c *Client) Stats() (p *engine.Stats, err lib.ErrorI) {
	p = new(engine.Stats)
	err = c.post(StatsRouteName, nil, p)
	return
}

func (c *Client) Mode() (p *engine.Mode, err lib.ErrorI) {
	p = new(engine.Mode)
	err = c.post(ModeRouteName, nil, p)
	return
}

func (c *Client) Account(address lib.HexBytes, asset string) (p *engine.Account, err lib.ErrorI) {
	p = new(engine.Account)
	err = c.post(AccountRouteName, accountRequest{Address: address, Asset: asset}, p)
	return
}

func (c *Client) Treasury(asset string) (p *engine.Pool, err lib.ErrorI) {
	p = new(engine.Pool)
	err = c.post(TreasuryRouteName, assetRequest{Asset: asset}, p)
	return
}

func (c *Client) EventsByHeight(height uint64) (p *lib.Events, err lib.ErrorI) {
	p = new(lib.Events)
	err = c.post(EventsByHeightRouteName, heightRequest{Height: height}, p)
	return
}

func (c *Client) State() (p *engine.Genesis, err lib.ErrorI) {
	p = new(engine.Genesis)
	err = c.get(StateRouteName, p)
	return
}

func (c *Client) Propose(address lib.HexBytes, proposal *engine.Proposal) (p *proposeResult, err lib.ErrorI) {
	p = new(proposeResult)
	err = c.post(ProposeRouteName, proposeRequest{Address: address, Proposal: proposal}, p, true)
	return
}

func (c *Client) Endorse(id uint64, address lib.HexBytes) (p *engine.Proposal, err lib.ErrorI) {
	return c.proposalAction(EndorseRouteName, id, address)
}

func (c *Client) Revoke(id uint64, address lib.HexBytes) (p *engine.Proposal, err lib.ErrorI) {
	return c.proposalAction(RevokeRouteName, id, address)
}

func (c *Client) Execute(id uint64, address lib.HexBytes) (p *engine.Proposal, err lib.ErrorI) {
	return c.proposalAction(ExecuteRouteName, id, address)
}

func (c *Client) Cancel(id uint64, address lib.HexBytes) (p *engine.Proposal, err lib.ErrorI) {
	return c.proposalAction(CancelRouteName, id, address)
}

func (c *Client) Deposit(asset string, amount uint64) (p *engine.Pool, err lib.ErrorI) {
	p = new(engine.Pool)
	err = c.post(DepositRouteName, depositRequest{Asset: asset, Amount: amount}, p, true)
	return
}

func (c *Client) proposalAction(routeName string, id uint64, address lib.HexBytes) (p *engine.Proposal, err lib.ErrorI) {
	p = new(engine.Proposal)
	err = c.post(routeName, proposalActionRequest{Id: id, Address: address}, p, true)
	return
}

// url resolves a route name against the query or admin endpoint
func (c *Client) url(routeName string, admin ...bool) string {
	// if rpc port and admin ports are defined then it's a local RPC deployment
	if c.rpcPort != "" && c.adminPort != "" {
		if admin != nil && admin[0] {
			return "http://" + localhost + colon + c.adminPort + routePaths[routeName].Path
		}
		return c.rpcURL + colon + c.rpcPort + routePaths[routeName].Path
	}
	// if rpc port is not defined then it's considered a remote RPC deployment
	return c.rpcURL + routePaths[routeName].Path
}

// post marshals the body and POSTs it, retrying transport failures with exponential backoff
func (c *Client) post(routeName string, body any, ptr any, admin ...bool) lib.ErrorI {
	bz, err := lib.Marshal(body)
	if err != nil {
		return err
	}
	var resp *http.Response
	if postErr := backoff.Retry(func() error {
		r, e := c.client.Post(c.url(routeName, admin...), ApplicationJSON, bytes.NewBuffer(bz))
		if e != nil {
			return e
		}
		resp = r
		return nil
	}, retryPolicy()); postErr != nil {
		return lib.ErrRPCPostFailed(postErr)
	}
	return c.unmarshal(resp, ptr)
}

// get issues a GET, retrying transport failures with exponential backoff
func (c *Client) get(routeName string, ptr any, admin ...bool) lib.ErrorI {
	var resp *http.Response
	if getErr := backoff.Retry(func() error {
		r, e := c.client.Get(c.url(routeName, admin...))
		if e != nil {
			return e
		}
		resp = r
		return nil
	}, retryPolicy()); getErr != nil {
		return lib.ErrRPCPostFailed(getErr)
	}
	return c.unmarshal(resp, ptr)
}

// unmarshal reads an RPC response body into ptr, surfacing non-200s as typed errors
func (c *Client) unmarshal(resp *http.Response, ptr any) lib.ErrorI {
	defer func() { _ = resp.Body.Close() }()
	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return lib.ErrRPCPostFailed(err)
	}
	if resp.StatusCode != http.StatusOK {
		return lib.ErrRPCBadRequest(resp.Status, bz)
	}
	return lib.Unmarshal(bz, ptr)
}

// retryPolicy caps the exponential backoff so CLI calls fail fast when the node is down
func retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 15 * time.Second
	return backoff.WithMaxRetries(b, 5)
}
