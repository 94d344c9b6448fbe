package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/feature"
	"github.com/TheShai81/music-dashboard/internal/domain/insights"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
	"github.com/TheShai81/music-dashboard/internal/transport/api"
	healthuc "github.com/TheShai81/music-dashboard/internal/usecase/health"
)

const releaseDateLayout = "2006-01-02"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Defaults fills query parameters the client left out. Zero fields fall back
// to the engine's built-in defaults.
type Defaults struct {
	SampleSize   int
	TopK         int
	ReturnN      int
	DiscoverSize int
}

// Server implements api.ServerInterface.
type Server struct {
	taste         TasteService
	likes         LikeService
	social        SocialService
	recommend     RecommendService
	insights      InsightsService
	health        HealthService
	defaults      Defaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	taste TasteService,
	likes LikeService,
	social SocialService,
	recommend RecommendService,
	insightsSvc InsightsService,
	health HealthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		taste:     taste,
		likes:     likes,
		social:    social,
		recommend: recommend,
		insights:  insightsSvc,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		invalidArgumentHandler,
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, api.ErrorResponseCodeUserNotFound),
		sentinelHandler(domain.ErrTrackNotFound, http.StatusNotFound, api.ErrorResponseCodeTrackNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, api.ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrIndexUnavailable,
			http.StatusServiceUnavailable, api.ErrorResponseCodeIndexUnavailable),
	}
	return s
}

// WithDefaults sets the values used for omitted query parameters.
func (s *Server) WithDefaults(d Defaults) *Server {
	s.defaults = d
	return s
}

// GetProfile handles GET /users/{userID}/profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	p, err := s.taste.Profile(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	named := p.Vector.Named()
	features := make(map[string]float64, len(named))
	for name, v := range named {
		features[string(name)] = v
	}
	writeJSON(w, http.StatusOK, api.ProfileResponse{
		UserID:   p.UserID,
		Vector:   p.Vector[:],
		Features: features,
		Empty:    p.Empty(),
	})
}

// ListLikedTracks handles GET /users/{userID}/likes.
func (s *Server) ListLikedTracks(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	liked, err := s.likes.Liked(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]api.LikedTrack, len(liked))
	for i, l := range liked {
		items[i] = api.LikedTrack{Track: trackToAPI(l.Track), LikedAt: l.LikedAt}
	}
	writeJSON(w, http.StatusOK, api.LikedTrackListResponse{UserID: userID, Items: items, Total: len(items)})
}

// ToggleLike handles POST /users/{userID}/likes/{trackID}/toggle.
func (s *Server) ToggleLike(w http.ResponseWriter, r *http.Request, userID api.UserID, trackID api.TrackID) {
	liked, err := s.likes.Toggle(r.Context(), userID, trackID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ToggleLikeResponse{UserID: userID, TrackID: trackID, Liked: liked})
}

// ListFriends handles GET /users/{userID}/friends.
func (s *Server) ListFriends(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	friends, err := s.social.Friends(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usersToAPI(userID, friends))
}

// ListFriendSuggestions handles GET /users/{userID}/friends/suggestions.
func (s *Server) ListFriendSuggestions(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	candidates, err := s.social.Suggestions(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usersToAPI(userID, candidates))
}

// Befriend handles PUT /users/{userID}/friends/{friendID}.
func (s *Server) Befriend(w http.ResponseWriter, r *http.Request, userID, friendID api.UserID) {
	created, err := s.social.Befriend(r.Context(), userID, friendID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, api.BefriendResponse{UserID: userID, FriendID: friendID, Created: created})
}

// GetCompatibility handles GET /users/{userID}/compatibility/{otherID}.
func (s *Server) GetCompatibility(w http.ResponseWriter, r *http.Request, userID, otherID api.UserID) {
	score, err := s.taste.Compatibility(r.Context(), userID, otherID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CompatibilityResponse{
		UserID:  userID,
		OtherID: otherID,
		Score:   score,
		Percent: feature.Percent(score),
	})
}

// GetSoulmate handles GET /users/{userID}/soulmate.
func (s *Server) GetSoulmate(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	m, found, err := s.recommend.Soulmate(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchToAPI(m, found))
}

// RecommendFriend handles GET /users/{userID}/recommendations/friend.
func (s *Server) RecommendFriend(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	m, found, err := s.recommend.RecommendFriend(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchToAPI(m, found))
}

// Discover handles GET /users/{userID}/discover.
func (s *Server) Discover(w http.ResponseWriter, r *http.Request, userID api.UserID, params api.DiscoverParams) {
	if err := validateParams(params); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	tracks, err := s.recommend.Discover(r.Context(), userID, derefInt(params.Limit, s.defaults.DiscoverSize))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]api.Track, len(tracks))
	for i, t := range tracks {
		items[i] = trackToAPI(t)
	}
	writeJSON(w, http.StatusOK, api.TrackListResponse{Items: items, Total: len(items)})
}

// SimilarTracks handles GET /tracks/{trackID}/similar.
func (s *Server) SimilarTracks(
	w http.ResponseWriter,
	r *http.Request,
	trackID api.TrackID,
	params api.SimilarTracksParams,
) {
	if err := validateParams(params); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	req := similar.NewRequest(
		trackID,
		derefInt(params.SampleSize, s.defaults.SampleSize),
		derefInt(params.TopK, s.defaults.TopK),
		derefInt(params.Limit, s.defaults.ReturnN),
	)
	results, err := s.recommend.SimilarTracks(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]api.SimilarTrack, len(results))
	for i, res := range results {
		items[i] = api.SimilarTrack{ID: res.Track.ID, Title: res.Track.Title, Score: res.Score}
	}
	writeJSON(w, http.StatusOK, api.SimilarTrackListResponse{TrackID: trackID, Items: items, Total: len(items)})
}

// GetInsights handles GET /users/{userID}/insights.
func (s *Server) GetInsights(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	d, err := s.insights.Dashboard(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.InsightsResponse{
		UserID:     d.UserID,
		LikeCount:  d.LikeCount,
		Obscurity:  d.Obscurity,
		MusicAge:   d.MusicAge,
		TopGenres:  rankedToAPI(d.TopGenres),
		TopArtists: rankedToAPI(d.TopArtists),
	})
}

// GetObscurity handles GET /users/{userID}/insights/obscurity.
func (s *Server) GetObscurity(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	v, err := s.insights.Obscurity(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ObscurityResponse{UserID: userID, Obscurity: v})
}

// GetMusicAge handles GET /users/{userID}/insights/music-age.
func (s *Server) GetMusicAge(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	v, err := s.insights.MusicAge(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MusicAgeResponse{UserID: userID, MusicAge: v})
}

// GetTopGenres handles GET /users/{userID}/insights/top-genres.
func (s *Server) GetTopGenres(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	ranked, err := s.insights.TopGenres(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.RankedListResponse{UserID: userID, Items: rankedToAPI(ranked)})
}

// GetTopArtists handles GET /users/{userID}/insights/top-artists.
func (s *Server) GetTopArtists(w http.ResponseWriter, r *http.Request, userID api.UserID) {
	ranked, err := s.insights.TopArtists(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.RankedListResponse{UserID: userID, Items: rankedToAPI(ranked)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, api.HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ParamErrorHandler answers parameters that failed to bind.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	msg := "invalid request"
	var pe *api.InvalidParamFormatError
	if errors.As(err, &pe) {
		msg = "invalid " + pe.ParamName
	}
	writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code api.ErrorResponseCode, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUserNotFound,
		domain.ErrTrackNotFound,
		domain.ErrNotFound,
		domain.ErrSelfFriendship,
		domain.ErrInvalidArgument,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code api.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidArgumentHandler names the offending field when the error carries one.
func invalidArgumentHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidArgument) {
		return false
	}
	var iae *domain.InvalidArgumentError
	if errors.As(err, &iae) {
		msg = iae.Error()
	}
	writeError(w, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, api.ErrorResponseCodeInternalError, "internal error")
}

func trackToAPI(t track.Track) api.Track {
	out := api.Track{ID: t.ID, Title: t.Title, Popularity: t.Popularity}
	if t.ReleaseDate != nil {
		d := t.ReleaseDate.Format(releaseDateLayout)
		out.ReleaseDate = &d
	}
	return out
}

func usersToAPI(userID int64, users []user.User) api.UserListResponse {
	items := make([]api.User, len(users))
	for i, u := range users {
		items[i] = api.User{ID: u.ID, Username: u.Username}
	}
	return api.UserListResponse{UserID: userID, Items: items, Total: len(items)}
}

func matchToAPI(m domsocial.Match, found bool) api.MatchResponse {
	if !found {
		return api.MatchResponse{Found: false}
	}
	percent := feature.Percent(m.Score)
	return api.MatchResponse{
		Found:    true,
		UserID:   &m.UserID,
		Username: &m.Username,
		Score:    &m.Score,
		Percent:  &percent,
	}
}

func rankedToAPI(in []insights.Ranked) []api.Ranked {
	out := make([]api.Ranked, len(in))
	for i, r := range in {
		out[i] = api.Ranked{ID: r.ID, Name: r.Name, Count: r.Count}
	}
	return out
}

func derefInt(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
