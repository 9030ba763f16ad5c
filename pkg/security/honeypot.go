package security

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"mockzen-backend/pkg/redis"
)

// HoneypotAttempt is one recorded probe against the decoy admin surface.
type HoneypotAttempt struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Referer   string    `json:"referer,omitempty"`
	Username  string    `json:"username,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// HoneypotRecorder appends attempts to a JSON-lines file and optionally
// notifies an external webhook.
type HoneypotRecorder struct {
	mu         sync.Mutex
	logPath    string
	webhookURL string
	client     *http.Client
	events     *SecurityLogger
}

func NewHoneypotRecorder(logPath, webhookURL string, events *SecurityLogger) *HoneypotRecorder {
	if logPath == "" {
		logPath = filepath.Join("logs", "honeypot.log")
	}
	return &HoneypotRecorder{
		logPath:    logPath,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		events:     events,
	}
}

// Record persists the attempt. File and webhook failures are logged, never
// surfaced to the caller: the decoy response must not change on error.
func (r *HoneypotRecorder) Record(ctx context.Context, attempt HoneypotAttempt) {
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = time.Now().UTC()
	}

	if attempt.Username != "" {
		r.events.LogHoneypotLogin(ctx, attempt.Username, attempt.IP, attempt.UserAgent, attempt.RequestID)
	} else {
		r.events.LogHoneypotHit(ctx, attempt.Path, attempt.IP, attempt.UserAgent, attempt.RequestID)
	}

	hits := r.countHit(ctx, attempt.IP)

	line, err := json.Marshal(attempt)
	if err != nil {
		return
	}

	r.mu.Lock()
	r.appendLine(line)
	r.mu.Unlock()

	if r.webhookURL != "" {
		go r.notify(attempt, hits)
	}
}

// countHit tracks probes per source IP in Redis with a rolling 24h window.
// Returns 0 when Redis is unavailable.
func (r *HoneypotRecorder) countHit(ctx context.Context, ip string) int64 {
	if ip == "" || !redis.IsAvailable() {
		return 0
	}
	client := redis.Client()
	key := "honeypot:hits:" + ip
	hits, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0
	}
	if hits == 1 {
		client.Expire(ctx, key, 24*time.Hour)
	}
	return hits
}

func (r *HoneypotRecorder) appendLine(line []byte) {
	if err := os.MkdirAll(filepath.Dir(r.logPath), 0o755); err != nil {
		r.events.zapLogger.Error("Failed to create honeypot log directory", zap.Error(err))
		return
	}
	f, err := os.OpenFile(r.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.events.zapLogger.Error("Failed to open honeypot log", zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		r.events.zapLogger.Error("Failed to write honeypot log entry", zap.Error(err))
	}
}

func (r *HoneypotRecorder) notify(attempt HoneypotAttempt, hits int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, err := json.Marshal(map[string]interface{}{
		"text": "Honeypot triggered",
		"attempt": map[string]interface{}{
			"path":       attempt.Path,
			"method":     attempt.Method,
			"ip":         attempt.IP,
			"user_agent": attempt.UserAgent,
			"hits_24h":   hits,
			"timestamp":  attempt.Timestamp.Format(time.RFC3339),
		},
	})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.events.zapLogger.Warn("Honeypot webhook delivery failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}
