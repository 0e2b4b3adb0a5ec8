package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultBatchSize     = 50
	defaultFlushInterval = 5 * time.Second
)

// LogWriter persists a batch of system logs.
type LogWriter interface {
	WriteLogs(logs []models.SystemLog) error
}

// GormLogWriter stores batches in the system_logs table.
type GormLogWriter struct {
	db *gorm.DB
}

func NewGormLogWriter(db *gorm.DB) *GormLogWriter {
	return &GormLogWriter{db: db}
}

func (w *GormLogWriter) WriteLogs(logs []models.SystemLog) error {
	return w.db.CreateInBatches(logs, defaultBatchSize).Error
}

// PGHandler is an slog.Handler that batches ERROR+ logs to PostgreSQL.
type PGHandler struct {
	core  *pgCore
	attrs []slog.Attr
}

// pgCore is shared by every handler derived through WithAttrs.
type pgCore struct {
	writer    LogWriter
	batchSize int
	mu        sync.Mutex
	buffer    []models.SystemLog
	ticker    *time.Ticker
	done      chan struct{}
	stopped   sync.WaitGroup
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	return NewBatchHandler(NewGormLogWriter(db), defaultBatchSize, defaultFlushInterval)
}

// NewBatchHandler buffers records and hands them to writer every interval
// or once batchSize records are queued.
func NewBatchHandler(writer LogWriter, batchSize int, interval time.Duration) *PGHandler {
	core := &pgCore{
		writer:    writer,
		batchSize: batchSize,
		buffer:    make([]models.SystemLog, 0, batchSize),
		ticker:    time.NewTicker(interval),
		done:      make(chan struct{}),
	}
	core.stopped.Add(1)
	go core.flushLoop()
	return &PGHandler{core: core}
}

func (c *pgCore) flushLoop() {
	defer c.stopped.Done()
	for {
		select {
		case <-c.ticker.C:
			c.flush()
		case <-c.done:
			c.flush()
			return
		}
	}
}

func (c *pgCore) flush() {
	c.mu.Lock()
	if len(c.buffer) == 0 {
		c.mu.Unlock()
		return
	}
	batch := c.buffer
	c.buffer = make([]models.SystemLog, 0, c.batchSize)
	c.mu.Unlock()

	if err := c.writer.WriteLogs(batch); err != nil {
		// WARN keeps this record out of the handler itself.
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the flush loop to exit.
func (h *PGHandler) Stop() {
	h.core.ticker.Stop()
	close(h.core.done)
	h.core.stopped.Wait()
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "disease":
			entry.Disease = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = valueOf(a.Value)
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	c := h.core
	c.mu.Lock()
	c.buffer = append(c.buffer, entry)
	needFlush := len(c.buffer) >= c.batchSize
	c.mu.Unlock()

	if needFlush {
		go c.flush()
	}
	return nil
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PGHandler{core: h.core, attrs: merged}
}

// WithGroup is not supported; grouped attributes land in Extra unqualified.
func (h *PGHandler) WithGroup(string) slog.Handler {
	return h
}

func valueOf(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if s, ok := v.Any().(fmt.Stringer); ok {
			return s.String()
		}
		return v.Any()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindGroup:
		return v.String()
	default:
		return v.Any()
	}
}
