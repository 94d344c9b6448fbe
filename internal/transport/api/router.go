package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by the HTTP handlers.
type ServerInterface interface {
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)

	// (GET /users/{userID}/profile)
	GetProfile(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/likes)
	ListLikedTracks(w http.ResponseWriter, r *http.Request, userID UserID)
	// (POST /users/{userID}/likes/{trackID}/toggle)
	ToggleLike(w http.ResponseWriter, r *http.Request, userID UserID, trackID TrackID)
	// (GET /users/{userID}/friends)
	ListFriends(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/friends/suggestions)
	ListFriendSuggestions(w http.ResponseWriter, r *http.Request, userID UserID)
	// (PUT /users/{userID}/friends/{friendID})
	Befriend(w http.ResponseWriter, r *http.Request, userID UserID, friendID UserID)
	// (GET /users/{userID}/compatibility/{otherID})
	GetCompatibility(w http.ResponseWriter, r *http.Request, userID UserID, otherID UserID)
	// (GET /users/{userID}/soulmate)
	GetSoulmate(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/recommendations/friend)
	RecommendFriend(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/discover)
	Discover(w http.ResponseWriter, r *http.Request, userID UserID, params DiscoverParams)
	// (GET /users/{userID}/insights)
	GetInsights(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/insights/obscurity)
	GetObscurity(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/insights/music-age)
	GetMusicAge(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/insights/top-genres)
	GetTopGenres(w http.ResponseWriter, r *http.Request, userID UserID)
	// (GET /users/{userID}/insights/top-artists)
	GetTopArtists(w http.ResponseWriter, r *http.Request, userID UserID)

	// (GET /tracks/{trackID}/similar)
	SimilarTracks(w http.ResponseWriter, r *http.Request, trackID TrackID, params SimilarTracksParams)
}

// MiddlewareFunc wraps a single operation handler.
type MiddlewareFunc func(http.Handler) http.Handler

// InvalidParamFormatError reports a path or query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ServerInterfaceWrapper binds request parameters and dispatches to Handler.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	var handler http.Handler = h
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) bindPath(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) bindQuery(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

// userRoute adapts an operation that takes only the userID path parameter.
func (siw *ServerInterfaceWrapper) userRoute(
	op func(w http.ResponseWriter, r *http.Request, userID UserID),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userID UserID
		if !siw.bindPath(w, r, "userID", &userID) {
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { op(w, r, userID) })
	}
}

// HealthCheck operation middleware
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.HealthCheck)
}

// Metrics operation middleware
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Metrics)
}

// ToggleLike operation middleware
func (siw *ServerInterfaceWrapper) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var userID UserID
	var trackID TrackID
	if !siw.bindPath(w, r, "userID", &userID) || !siw.bindPath(w, r, "trackID", &trackID) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ToggleLike(w, r, userID, trackID)
	})
}

// Befriend operation middleware
func (siw *ServerInterfaceWrapper) Befriend(w http.ResponseWriter, r *http.Request) {
	var userID, friendID UserID
	if !siw.bindPath(w, r, "userID", &userID) || !siw.bindPath(w, r, "friendID", &friendID) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Befriend(w, r, userID, friendID)
	})
}

// GetCompatibility operation middleware
func (siw *ServerInterfaceWrapper) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	var userID, otherID UserID
	if !siw.bindPath(w, r, "userID", &userID) || !siw.bindPath(w, r, "otherID", &otherID) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetCompatibility(w, r, userID, otherID)
	})
}

// Discover operation middleware
func (siw *ServerInterfaceWrapper) Discover(w http.ResponseWriter, r *http.Request) {
	var userID UserID
	if !siw.bindPath(w, r, "userID", &userID) {
		return
	}
	var params DiscoverParams
	if !siw.bindQuery(w, r, "limit", &params.Limit) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Discover(w, r, userID, params)
	})
}

// SimilarTracks operation middleware
func (siw *ServerInterfaceWrapper) SimilarTracks(w http.ResponseWriter, r *http.Request) {
	var trackID TrackID
	if !siw.bindPath(w, r, "trackID", &trackID) {
		return
	}
	var params SimilarTracksParams
	if !siw.bindQuery(w, r, "sample_size", &params.SampleSize) ||
		!siw.bindQuery(w, r, "top_k", &params.TopK) ||
		!siw.bindQuery(w, r, "limit", &params.Limit) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SimilarTracks(w, r, trackID, params)
	})
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	// BaseURL prefixes every API route. /health and /metrics stay at the root.
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates an http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions registers every operation on the options' router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Get("/health", wrapper.HealthCheck)
	r.Get("/metrics", wrapper.Metrics)

	r.Route(options.BaseURL+"/users/{userID}", func(r chi.Router) {
		r.Get("/profile", wrapper.userRoute(si.GetProfile))
		r.Get("/likes", wrapper.userRoute(si.ListLikedTracks))
		r.Post("/likes/{trackID}/toggle", wrapper.ToggleLike)
		r.Get("/friends", wrapper.userRoute(si.ListFriends))
		r.Get("/friends/suggestions", wrapper.userRoute(si.ListFriendSuggestions))
		r.Put("/friends/{friendID}", wrapper.Befriend)
		r.Get("/compatibility/{otherID}", wrapper.GetCompatibility)
		r.Get("/soulmate", wrapper.userRoute(si.GetSoulmate))
		r.Get("/recommendations/friend", wrapper.userRoute(si.RecommendFriend))
		r.Get("/discover", wrapper.Discover)
		r.Get("/insights", wrapper.userRoute(si.GetInsights))
		r.Get("/insights/obscurity", wrapper.userRoute(si.GetObscurity))
		r.Get("/insights/music-age", wrapper.userRoute(si.GetMusicAge))
		r.Get("/insights/top-genres", wrapper.userRoute(si.GetTopGenres))
		r.Get("/insights/top-artists", wrapper.userRoute(si.GetTopArtists))
	})
	r.Get(options.BaseURL+"/tracks/{trackID}/similar", wrapper.SimilarTracks)

	return r
}
