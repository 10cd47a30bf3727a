package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/internal/artifact"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
)

// CohortSummary describes a stored cohort.
type CohortSummary struct {
	Cohort             string  `json:"cohort"`
	ManifestHash       string  `json:"manifest_hash"`
	CalibrationVersion string  `json:"calibration_version"`
	Count              int     `json:"count"`
	P25                float64 `json:"p25"`
	P50                float64 `json:"p50"`
	P75                float64 `json:"p75"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getManifest serves the manifest with its hash as a strong ETag.
func (s *Server) getManifest(w http.ResponseWriter, r *http.Request) {
	loaded := s.engine.Manifest()
	etag := strconv.Quote(loaded.Hash)

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", manifestCacheControl)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	respondJSON(w, http.StatusOK, loaded.Manifest)
}

// etagMatches reports whether an If-None-Match header names etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) getRules(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, core.BuildRulesListing(s.engine.Manifest()))
}

func (s *Server) getCalibration(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.engine.Calibration())
}

// postAudit scores a measurement document. With ?cohort=X the score is ranked
// against the stored cohort, and ?submit=true stores it afterwards.
func (s *Server) postAudit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		respondError(w, http.StatusBadRequest, err)
		return
	}
	m, err := artifact.DecodeMeasurements(bytes.NewReader(body))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	query := r.URL.Query()
	cohortName := query.Get("cohort")
	submit, _ := strconv.ParseBool(query.Get("submit"))

	store := s.store()
	if (cohortName != "" || submit) && store == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("benchmark store is not configured"))
		return
	}
	if submit && cohortName == "" {
		respondError(w, http.StatusBadRequest, errors.New("submit requires a cohort"))
		return
	}

	var cohort *core.Cohort
	if cohortName != "" {
		scores, err := store.CohortScores(cohortName, s.engine.Manifest().Hash, s.engine.Calibration().Version)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		cohort = &core.Cohort{Name: cohortName, Scores: scores}
	}

	result := s.engine.Audit(m, cohort)

	if submit {
		report := result.Report
		_, err := store.Submit(schema.BenchmarkSubmission{
			Cohort:             cohortName,
			PageURL:            query.Get("page_url"),
			RawScore:           report.Raw,
			CalibratedScore:    report.Calibrated,
			ManifestVersion:    report.ManifestVersion,
			ManifestHash:       report.ManifestHash,
			CalibrationVersion: report.CalibrationVersion,
			SubmittedAt:        s.now(),
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Errorf("submit benchmark: %w", err))
			return
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// getBenchmark summarizes a stored cohort under the served manifest.
func (s *Server) getBenchmark(w http.ResponseWriter, r *http.Request) {
	store := s.store()
	if store == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("benchmark store is not configured"))
		return
	}
	cohort := chi.URLParam(r, "cohort")
	hash := s.engine.Manifest().Hash
	version := s.engine.Calibration().Version

	scores, err := store.CohortScores(cohort, hash, version)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if len(scores) == 0 {
		respondError(w, http.StatusNotFound, fmt.Errorf("cohort %q has no submissions for manifest %s and calibration %s", cohort, hash, version))
		return
	}
	respondJSON(w, http.StatusOK, CohortSummary{
		Cohort:             cohort,
		ManifestHash:       hash,
		CalibrationVersion: version,
		Count:              len(scores),
		P25:                algo.Percentile(scores, 0.25),
		P50:                algo.Percentile(scores, 0.50),
		P75:                algo.Percentile(scores, 0.75),
	})
}

// store returns the benchmark store, or nil when benchmarking is disabled.
func (s *Server) store() contract.BenchmarkStore {
	if s.mgr == nil {
		return nil
	}
	store := s.mgr.GetBenchmarkStore()
	if store == nil {
		return nil
	}
	return store
}

func respondJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, code int, err error) {
	respondJSON(w, code, map[string]string{"error": err.Error()})
}
