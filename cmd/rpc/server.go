package rpc

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/custodia-network/custodia/engine"
	"github.com/custodia-network/custodia/lib"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

const (
	colon = ":"

	SoftwareVersion = "0.1.0"
	ContentType     = "Content-Type"
	ApplicationJSON = "application/json; charset=utf-8"
	localhost       = "localhost"
)

// Server exposes the custody engine over two HTTP surfaces: a read-only
// query API and a mutating admin API on a separate port.
type Server struct {
	// the custody engine backing every route
	engine *engine.Engine

	// node configuration
	config lib.Config

	logger lib.LoggerI
}

// NewServer constructs and returns a new Custodia RPC server
func NewServer(e *engine.Engine, config lib.Config, logger lib.LoggerI) *Server {
	return &Server{
		engine: e,
		config: config,
		logger: logger,
	}
}

// Start initializes the Custodia RPC servers
func (s *Server) Start() {
	// Start the Query and Admin RPC servers concurrently
	go s.startRPC(createRouter(s), s.config.RPCPort)
	go s.startRPC(createAdminRouter(s), s.config.AdminPort)
}

// startRPC starts an RPC server with the provided router and port
func (s *Server) startRPC(router *httprouter.Router, port string) {

	// Create CORS policy
	cor := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS", "POST"},
	})

	// Create a default timeout for HTTP requests
	timeout := time.Duration(s.config.TimeoutS) * time.Second

	// Start RPC server
	s.logger.Infof("Starting RPC server at 0.0.0.0:%s", port)
	s.logger.Fatal((&http.Server{
		Addr:    colon + port,
		Handler: cor.Handler(http.TimeoutHandler(router, timeout, lib.ErrServerTimeout().Error())),
	}).ListenAndServe().Error())
}

// unmarshal reads the request body up to the configured limit and populates ptr
func (s *Server) unmarshal(w http.ResponseWriter, r *http.Request, ptr interface{}) bool {
	bz, err := io.ReadAll(io.LimitReader(r.Body, int64(s.config.MaxRequestBytes)))
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return false
	}
	defer func() { _ = r.Body.Close() }()
	if err = json.Unmarshal(bz, ptr); err != nil {
		write(w, err, http.StatusBadRequest)
		return false
	}
	return true
}

// write marshaled payload to w
func write(w http.ResponseWriter, payload interface{}, code int) {
	w.Header().Set(ContentType, ApplicationJSON)
	w.WriteHeader(code)

	// errors are built-in error types, not json marshalers
	if e, ok := payload.(error); ok {
		if _, isTyped := payload.(lib.ErrorI); !isTyped {
			payload = e.Error()
		}
	}

	// Marshal and indent the payload
	bz, _ := json.MarshalIndent(payload, "", "  ")
	_, _ = w.Write(bz)
}

// writeErr maps the error's recovery category to an HTTP status and writes it
func writeErr(w http.ResponseWriter, err lib.ErrorI) {
	write(w, err, httpStatus(err))
}

// httpStatus picks the response code from the error recovery category
func httpStatus(err lib.ErrorI) int {
	switch err.Category() {
	case lib.AuthError:
		return http.StatusUnauthorized
	case lib.ValidityError, lib.SetupError:
		return http.StatusBadRequest
	case lib.ConflictError:
		return http.StatusConflict
	case lib.ExecutionError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// logHandler wraps a route handler so the request path can be traced
type logHandler struct {
	path string
	h    httprouter.Handle
}

// Handle
func (h logHandler) Handle(resp http.ResponseWriter, req *http.Request, p httprouter.Params) {
	// Uncomment the line below to enable endpoint path logging for debugging.
	// logger.Debug(h.path)

	// Call the actual handler function with the response, request, and parameters.
	h.h(resp, req, p)
}
