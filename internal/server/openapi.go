package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/Archonic944/Imposter/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Imposter API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Imposter party game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the active persistence backend.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /game/create
	postCreate, _ := r.NewOperationContext(http.MethodPost, "/game/create")
	postCreate.SetSummary("Create game")
	postCreate.SetDescription("Creates a new lobby and returns its join code. Sets the identity cookie when absent.")
	postCreate.AddReqStructure(CreateRequest{})
	postCreate.AddRespStructure(CreateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCreate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postCreate)

	// POST /game/{code}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/game/{code}/join")
	postJoin.SetSummary("Join game")
	postJoin.SetDescription("Seats the caller in the lobby under a unique name. Re-joining with the same identity renames the player.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postJoin)

	// POST /game/{code}/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/game/{code}/start")
	postStart.SetSummary("Start game")
	postStart.SetDescription("Host-only. Assigns roles and the secret word, then returns the caller's view of the game.")
	postStart.AddRespStructure(game.PublicView{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postStart)

	// GET /game/{code}/status
	getStatus, _ := r.NewOperationContext(http.MethodGet, "/game/{code}/status")
	getStatus.SetSummary("Game status")
	getStatus.SetDescription("Returns the role-redacted view of the game for the caller. Works without an identity cookie.")
	getStatus.AddRespStructure(game.PublicView{}, openapi.WithHTTPStatus(http.StatusOK))
	getStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStatus)

	// POST /game/{code}/vote
	postVote, _ := r.NewOperationContext(http.MethodPost, "/game/{code}/vote")
	postVote.SetSummary("Vote out player")
	postVote.SetDescription("Host-only. Flags a player as voted out, by id or by name. Idempotent.")
	postVote.AddReqStructure(VoteRequest{})
	postVote.AddRespStructure(VoteResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postVote.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postVote.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postVote.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postVote.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postVote)

	// POST /game/{code}/replay
	postReplay, _ := r.NewOperationContext(http.MethodPost, "/game/{code}/replay")
	postReplay.SetSummary("Replay game")
	postReplay.SetDescription("Host-only. Creates a fresh lobby with the same config and links it from the old game.")
	postReplay.AddRespStructure(ReplayResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postReplay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postReplay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postReplay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postReplay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(postReplay)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
