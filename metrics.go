/*
 * metrics.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package atomstruct

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rmera/atomstruct/destruct"
)

// Metrics counts the expensive work done by structures: derived-cache
// recomputations, destruction batches and session traffic. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Recomputes      *prometheus.CounterVec
	Batches         prometheus.Counter
	Destroyed       prometheus.Counter
	SessionSaves    prometheus.Counter
	SessionRestores prometheus.Counter
	SessionInts     prometheus.Histogram

	mu    sync.Mutex
	users map[*destruct.Coordinator]int //live structures per coordinator
}

// NewMetrics registers the atomstruct metrics in reg. A nil reg uses the
// default prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Recomputes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "atomstruct_cache_recomputes_total",
			Help: "Recomputations of derived structure caches",
		}, []string{"cache"}),
		Batches: f.NewCounter(prometheus.CounterOpts{
			Name: "atomstruct_destruction_batches_total",
			Help: "Non-empty destruction batches delivered to observers",
		}),
		Destroyed: f.NewCounter(prometheus.CounterOpts{
			Name: "atomstruct_destroyed_entities_total",
			Help: "Entities reported destroyed",
		}),
		SessionSaves: f.NewCounter(prometheus.CounterOpts{
			Name: "atomstruct_session_saves_total",
			Help: "Structures serialized into session data",
		}),
		SessionRestores: f.NewCounter(prometheus.CounterOpts{
			Name: "atomstruct_session_restores_total",
			Help: "Structures restored from session data",
		}),
		SessionInts: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "atomstruct_session_ints",
			Help:    "Length of the integer stream of saved sessions",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),
	}
}

// attach registers M with c on behalf of one more structure.
func (M *Metrics) attach(c *destruct.Coordinator) {
	if M == nil {
		return
	}
	M.mu.Lock()
	defer M.mu.Unlock()
	if M.users == nil {
		M.users = make(map[*destruct.Coordinator]int)
	}
	M.users[c]++
	c.AddObserver(M)
}

// detach undoes attach. M leaves c with the last structure using it.
func (M *Metrics) detach(c *destruct.Coordinator) {
	if M == nil {
		return
	}
	M.mu.Lock()
	defer M.mu.Unlock()
	if n := M.users[c] - 1; n > 0 {
		M.users[c] = n
		return
	}
	delete(M.users, c)
	c.RemoveObserver(M)
}

func (M *Metrics) recompute(cache string) {
	if M == nil {
		return
	}
	M.Recomputes.WithLabelValues(cache).Inc()
}

// DestructorsDone counts a destruction batch.
func (M *Metrics) DestructorsDone(destroyed map[any]struct{}) {
	if M == nil {
		return
	}
	M.Batches.Inc()
	M.Destroyed.Add(float64(len(destroyed)))
}

func (M *Metrics) sessionSaved(ints int) {
	if M == nil {
		return
	}
	M.SessionSaves.Inc()
	M.SessionInts.Observe(float64(ints))
}

func (M *Metrics) sessionRestored() {
	if M == nil {
		return
	}
	M.SessionRestores.Inc()
}
