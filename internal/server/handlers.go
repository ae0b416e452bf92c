package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/mapper"
	"github.com/hyperjump/meshi/internal/models"
	"github.com/hyperjump/meshi/internal/recommend"
	"github.com/hyperjump/meshi/internal/validation"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"health_check": "OK"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			s.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  verr.Error(),
				"fields": verr.Fields,
			})
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	query, err := req.ToQuery(s.config.Recommend.DefaultCount)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reqID := middleware.GetReqID(r.Context())
	s.logger.Debug("recommend request",
		zap.String("request_id", reqID),
		zap.String("category", query.Category.String()),
		zap.Strings("ingredients", query.Ingredients),
		zap.Int("k", query.K),
	)
	res, err := s.engine.Recommend(query)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidQuery) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("recommendation failed", zap.String("request_id", reqID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	recipes, err := s.mapper.ToEntities(res)
	if err != nil {
		if errors.Is(err, mapper.ErrMalformedField) {
			s.logger.Error("catalog row is malformed", zap.String("request_id", reqID), zap.Error(err))
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.RecommendResponse{Output: recipes})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Store()
	categories := make(map[string]int)
	for i := range store.Table().Rows() {
		row := store.Table().Row(i)
		for _, c := range catalog.Categories() {
			if row.Has(c) {
				categories[c.String()]++
			}
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":       store.Name(),
		"rows":       store.Len(),
		"categories": categories,
		"max_count":  s.config.Recommend.MaxCount,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
