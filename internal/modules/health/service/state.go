package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	monitorRunning atomic.Bool
	lastEvalUnix   atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetMonitorRunning(v bool) { s.monitorRunning.Store(v) }
func (s *State) MonitorRunning() bool     { return s.monitorRunning.Load() }

func (s *State) TouchEval(t time.Time) { s.lastEvalUnix.Store(t.Unix()) }
func (s *State) LastEval() time.Time {
	u := s.lastEvalUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
