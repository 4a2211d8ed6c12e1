package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status — итог проверки: компонент либо отвечает, либо нет.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Каждая проверка получает собственный таймаут, чтобы один зависший
// бэкенд не растягивал весь отчёт.
const checkTimeout = 3 * time.Second

// CheckFunc опрашивает один компонент (PostgreSQL, MongoDB, Redis).
// Ненулевая ошибка означает, что компонент нездоров.
type CheckFunc func(ctx context.Context) error

// Check — результат одной проверки в отчёте.
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response — полный отчёт по всем зарегистрированным компонентам.
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks,omitempty"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

type namedCheck struct {
	name  string
	check CheckFunc
}

// Handler агрегирует проверки подключённых бэкендов.
type Handler struct {
	mu      sync.RWMutex
	checks  []namedCheck
	version string
	started time.Time
}

func NewHandler(version string) *Handler {
	return &Handler{
		version: version,
		started: time.Now(),
	}
}

// Register добавляет проверку; вызывается из сборки зависимостей
// только для реально подключённых бэкендов.
func (h *Handler) Register(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

// run опрашивает все компоненты параллельно и сводит общий статус.
func (h *Handler) run(ctx context.Context) (map[string]Check, Status) {
	h.mu.RLock()
	checks := make([]namedCheck, len(h.checks))
	copy(checks, h.checks)
	h.mu.RUnlock()

	results := make([]Check, len(checks))
	var wg sync.WaitGroup
	for i, nc := range checks {
		wg.Add(1)
		go func(i int, nc namedCheck) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			start := time.Now()
			err := nc.check(checkCtx)

			result := Check{
				Name:       nc.name,
				Status:     StatusHealthy,
				DurationMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				result.Status = StatusUnhealthy
				result.Message = err.Error()
			}
			results[i] = result
		}(i, nc)
	}
	wg.Wait()

	overall := StatusHealthy
	byName := make(map[string]Check, len(results))
	for _, r := range results {
		byName[r.Name] = r
		if r.Status == StatusUnhealthy {
			overall = StatusUnhealthy
		}
	}
	return byName, overall
}

// ServeHTTP отдаёт подробный отчёт; любой нездоровый компонент
// опускает общий статус до 503.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks, overall := h.run(r.Context())

	code := http.StatusOK
	if overall == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{
		Status:        overall,
		Timestamp:     time.Now(),
		Checks:        checks,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

// LivenessHandler отвечает 200, пока процесс жив.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ReadinessHandler отвечает 200, только когда здоровы все компоненты.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	checks, overall := h.run(r.Context())
	if overall == StatusUnhealthy {
		for name, c := range checks {
			if c.Status == StatusUnhealthy {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ready: " + name))
				return
			}
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
