package rpc

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Custodia RPC Paths
const (
	VersionRoutePath        = "/v1/"
	HeightRoutePath         = "/v1/query/height"
	MemberRoutePath         = "/v1/query/member"
	MembersRoutePath        = "/v1/query/members"
	ProposalRoutePath       = "/v1/query/proposal"
	ProposalsRoutePath      = "/v1/query/proposals"
	ApprovalsRoutePath      = "/v1/query/approvals"
	PolicyRoutePath         = "/v1/query/policy"
	StatsRoutePath          = "/v1/query/stats"
	ModeRoutePath           = "/v1/query/mode"
	AccountRoutePath        = "/v1/query/account"
	TreasuryRoutePath       = "/v1/query/treasury"
	EventsByHeightRoutePath = "/v1/query/events-by-height"
	StateRoutePath          = "/v1/query/state"
	// admin
	ProposeRoutePath = "/v1/admin/propose"
	EndorseRoutePath = "/v1/admin/endorse"
	RevokeRoutePath  = "/v1/admin/revoke"
	ExecuteRoutePath = "/v1/admin/execute"
	CancelRoutePath  = "/v1/admin/cancel"
	DepositRoutePath = "/v1/admin/deposit"
)

const (
	VersionRouteName        = "version"
	HeightRouteName         = "height"
	MemberRouteName         = "member"
	MembersRouteName        = "members"
	ProposalRouteName       = "proposal"
	ProposalsRouteName      = "proposals"
	ApprovalsRouteName      = "approvals"
	PolicyRouteName         = "policy"
	StatsRouteName          = "stats"
	ModeRouteName           = "mode"
	AccountRouteName        = "account"
	TreasuryRouteName       = "treasury"
	EventsByHeightRouteName = "events-by-height"
	StateRouteName          = "state"
	// admin
	ProposeRouteName = "propose"
	EndorseRouteName = "endorse"
	RevokeRouteName  = "revoke"
	ExecuteRouteName = "execute"
	CancelRouteName  = "cancel"
	DepositRouteName = "deposit"
)

// routes contains the method and path for a custodia command
type routes map[string]struct {
	Method string
	Path   string
}

// routePaths is a mapping from route names to their corresponding HTTP methods and paths.
var routePaths = routes{
	VersionRouteName:        {Method: http.MethodGet, Path: VersionRoutePath},
	HeightRouteName:         {Method: http.MethodPost, Path: HeightRoutePath},
	MemberRouteName:         {Method: http.MethodPost, Path: MemberRoutePath},
	MembersRouteName:        {Method: http.MethodPost, Path: MembersRoutePath},
	ProposalRouteName:       {Method: http.MethodPost, Path: ProposalRoutePath},
	ProposalsRouteName:      {Method: http.MethodPost, Path: ProposalsRoutePath},
	ApprovalsRouteName:      {Method: http.MethodPost, Path: ApprovalsRoutePath},
	PolicyRouteName:         {Method: http.MethodPost, Path: PolicyRoutePath},
	StatsRouteName:          {Method: http.MethodPost, Path: StatsRoutePath},
	ModeRouteName:           {Method: http.MethodPost, Path: ModeRoutePath},
	AccountRouteName:        {Method: http.MethodPost, Path: AccountRoutePath},
	TreasuryRouteName:       {Method: http.MethodPost, Path: TreasuryRoutePath},
	EventsByHeightRouteName: {Method: http.MethodPost, Path: EventsByHeightRoutePath},
	StateRouteName:          {Method: http.MethodGet, Path: StateRoutePath},
	// admin
	ProposeRouteName: {Method: http.MethodPost, Path: ProposeRoutePath},
	EndorseRouteName: {Method: http.MethodPost, Path: EndorseRoutePath},
	RevokeRouteName:  {Method: http.MethodPost, Path: RevokeRoutePath},
	ExecuteRouteName: {Method: http.MethodPost, Path: ExecuteRoutePath},
	CancelRouteName:  {Method: http.MethodPost, Path: CancelRoutePath},
	DepositRouteName: {Method: http.MethodPost, Path: DepositRoutePath},
}

// httpRouteHandlers is a custom type that maps strings to httprouter handle functions
type httpRouteHandlers map[string]httprouter.Handle

// createRouter initializes and returns a new HTTP router with predefined route handlers.
func createRouter(s *Server) *httprouter.Router {
	var r = httpRouteHandlers{
		VersionRouteName:        s.Version,
		HeightRouteName:         s.Height,
		MemberRouteName:         s.Member,
		MembersRouteName:        s.Members,
		ProposalRouteName:       s.Proposal,
		ProposalsRouteName:      s.Proposals,
		ApprovalsRouteName:      s.Approvals,
		PolicyRouteName:         s.Policy,
		StatsRouteName:          s.Stats,
		ModeRouteName:           s.Mode,
		AccountRouteName:        s.Account,
		TreasuryRouteName:       s.Treasury,
		EventsByHeightRouteName: s.EventsByHeight,
		StateRouteName:          s.State,
	}

	// Initialize a new router using the httprouter package.
	router := httprouter.New()

	for name, handler := range r {
		// Retrieve the path configuration for the current route name.
		path := routePaths[name]

		// Add the handler for the specific path and HTTP method to the router.
		router.Handle(path.Method, path.Path, logHandler{path.Path, handler}.Handle)
	}

	return router
}

// createAdminRouter initializes and returns a new HTTP router with the mutating route handlers.
func createAdminRouter(s *Server) *httprouter.Router {
	var r = httpRouteHandlers{
		ProposeRouteName: s.Propose,
		EndorseRouteName: s.Endorse,
		RevokeRouteName:  s.Revoke,
		ExecuteRouteName: s.Execute,
		CancelRouteName:  s.Cancel,
		DepositRouteName: s.Deposit,
	}

	// Initialize a new router using the httprouter package.
	router := httprouter.New()

	for name, handler := range r {
		// Retrieve the path configuration for the current route name.
		path := routePaths[name]

		// Add the handler for the specific path and HTTP method to the router.
		router.Handle(path.Method, path.Path, logHandler{path.Path, handler}.Handle)
	}

	return router
}
