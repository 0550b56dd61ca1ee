package main

import (
	"sync"
	"time"

	"engined/internal/engine"
	"engined/pkg/types"
)

// engineService adapts a (possibly still building) engine handle to the
// HTTP API. The engine is built in the background; until it is ready the
// service reports state "building".
type engineService struct {
	mu        sync.RWMutex
	model     *engine.Model
	buildErr  string
	artifacts []types.Artifact
	startTime time.Time
}

func newEngineService(artifacts []types.Artifact) *engineService {
	return &engineService{artifacts: artifacts, startTime: time.Now()}
}

func (s *engineService) setModel(m *engine.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
}

func (s *engineService) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buildErr = err.Error()
}

func (s *engineService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model != nil
}

func (s *engineService) ListModels() []types.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

func (s *engineService) Status() types.StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := types.StatusResponse{
		State:          "building",
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	switch {
	case s.buildErr != "":
		resp.State = "error"
		resp.Error = s.buildErr
	case s.model != nil:
		rt := s.model.Runtime()
		sched := rt.SchedulerConfig()
		resp.State = "ready"
		resp.ModelID = s.model.ModelID()
		resp.MaxNumSeqs = sched.MaxNumSeqs()
		if sched.IsPaged() {
			resp.Scheduler = "paged_attention"
		} else {
			resp.Scheduler = "default"
		}
	}
	return resp
}
