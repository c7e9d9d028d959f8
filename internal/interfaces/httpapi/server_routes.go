package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/fixtures", handler.ListSeasonFixtures)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/groups", RequireUser(http.HandlerFunc(handler.CreateGroup)))
	mux.Handle("POST /v1/groups/join", RequireUser(http.HandlerFunc(handler.JoinGroup)))
	mux.Handle("GET /v1/groups/{groupID}/predictions/me", RequireUser(http.HandlerFunc(handler.ListMyPredictions)))
	mux.Handle("POST /v1/predictions", RequireUser(http.HandlerFunc(handler.CreatePrediction)))
	mux.Handle("PUT /v1/predictions/{predictionID}", RequireUser(http.HandlerFunc(handler.UpdatePrediction)))
	mux.Handle("GET /v1/rankings/{accessCode}", RequireUser(http.HandlerFunc(handler.GetRanking)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-seasons", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSeasonSyncJob)))
	mux.Handle("POST /v1/internal/jobs/sync-teams", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunTeamSyncJob)))
	mux.Handle("POST /v1/internal/jobs/sync-fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFixtureSyncJob)))
	mux.Handle("POST /v1/internal/jobs/score-batch", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoringBatchJob)))
}
