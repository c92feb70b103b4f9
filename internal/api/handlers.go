package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/recommender"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	books, err := s.svc.Books(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	users, err := s.svc.Users(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Books: len(books), Users: len(users)})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	models, err := s.svc.Models(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ModelsResponse{Models: models})
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	books, err := s.svc.Books(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, BooksResponse{Books: books})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	users, err := s.svc.Users(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, UsersResponse{Users: users})
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	k, err := getIntParam(r, "k", 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	items, err := s.svc.Popular(ctx, k)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, PopularResponse{Items: items})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecommendRequest(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	result, err := s.svc.Recommend(ctx, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// parseRecommendRequest reads user, model, books and k from the query.
// An absent user means NoHistory.
func parseRecommendRequest(r *http.Request) (recommender.Request, error) {
	q := r.URL.Query()
	req := recommender.Request{
		User:  recommender.NoHistory,
		Model: recommender.ModelType(q.Get("model")),
	}

	if raw := strings.TrimSpace(q.Get("user")); raw != "" {
		user, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || (user <= 0 && user != recommender.NoHistory) {
			return req, recommender.NewError(recommender.KindValidation, "invalid user %q", raw)
		}
		req.User = user
	}

	books, err := parseIDList(q.Get("books"))
	if err != nil {
		return req, err
	}
	req.Books = books

	k, err := getIntParam(r, "k", 0)
	if err != nil {
		return req, err
	}
	req.K = k
	return req, nil
}

// parseIDList parses "1,2,3"; empty entries are skipped
func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, recommender.NewError(recommender.KindValidation, "invalid book id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getIntParam(r *http.Request, key string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, recommender.NewError(recommender.KindValidation, "invalid %s %q", key, raw)
	}
	return val, nil
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.config.RequestTimeout)
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind recommender.ErrorKind) int {
	switch kind {
	case recommender.KindValidation:
		return http.StatusBadRequest
	case recommender.KindNotFound:
		return http.StatusNotFound
	case recommender.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := recommender.KindOf(err)
	status := StatusFor(kind)

	message := err.Error()
	var typed *recommender.Error
	if errors.As(err, &typed) {
		message = typed.Message
	}

	if status >= http.StatusInternalServerError {
		s.log.ErrorWithFields("request error", []logger.Field{
			logger.F("path", r.URL.Path),
			logger.Error(err),
		})
	}
	s.respondJSON(w, status, ErrorResponse{Error: string(kind), Message: message})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response: %v", err)
	}
}
