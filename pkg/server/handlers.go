package server

import (
	"net/http"

	archerrors "github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/march"
	"github.com/NVIDIA/arch-stack/pkg/serializer"
	versionpkg "github.com/NVIDIA/arch-stack/pkg/version"
)

// handleDetect handles GET /v1/detect
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	best, sig, err := s.detector.Host(r.Context())
	if err != nil {
		WriteErrorFromErr(w, r, err, "detection failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, DetectResponse{
		Target:    targetFromNode(best, true),
		Signature: sig,
	})
}

// handleCompare handles GET /v1/compare?a=<name>&b=<name>
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		WriteError(w, r, http.StatusBadRequest, archerrors.ErrCodeInvalidRequest,
			"query parameters a and b are required", false, nil)
		return
	}

	ord, err := march.Compare(s.graph, a, b)
	if err != nil {
		WriteErrorFromErr(w, r, err, "comparison failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, CompareResponse{
		A:          a,
		B:          b,
		Ordering:   ord,
		Compatible: ord == march.Equal || ord == march.AncestorOf,
	})
}

// handleFlags handles GET /v1/flags?target=<name>&compiler=<name>&version=<v>
func (s *Server) handleFlags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := q.Get("target")
	compiler := q.Get("compiler")
	rawVersion := q.Get("version")
	if target == "" || compiler == "" || rawVersion == "" {
		WriteError(w, r, http.StatusBadRequest, archerrors.ErrCodeInvalidRequest,
			"query parameters target, compiler, and version are required", false, nil)
		return
	}

	v, err := versionpkg.Parse(rawVersion)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, archerrors.ErrCodeInvalidRequest,
			"invalid compiler version", false, map[string]any{"version": rawVersion})
		return
	}

	flags, err := march.ResolveFlags(s.graph, target, compiler, v)
	if err != nil {
		WriteErrorFromErr(w, r, err, "flag resolution failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, FlagsResponse{
		Target:   target,
		Compiler: compiler,
		Version:  v.String(),
		Flags:    flags,
	})
}

// handleTargets handles GET /v1/targets
func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	withFeatures := r.URL.Query().Get("features") == "true"

	nodes := s.graph.Nodes()
	targets := make([]Target, 0, len(nodes))
	for _, node := range nodes {
		targets = append(targets, targetFromNode(node, withFeatures))
	}

	serializer.RespondJSON(w, http.StatusOK, TargetsResponse{Targets: targets})
}
