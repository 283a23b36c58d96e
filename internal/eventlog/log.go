package eventlog

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GenesisHash is the prev_hash for the first entry in a new log.
const GenesisHash = "sha256:0000000000000000000000000000000000000000000000000000000000000000"

// Log is an append-only JSONL governance event log with SHA-256 hash
// chaining. Each entry's prev_hash is the hash of the previous entry's
// JSON line, forming a tamper-evident chain. The TRI engine never
// writes here; appends come from the event-producing layer (or the CLI
// in demos).
type Log struct {
	path     string
	file     *os.File
	prevHash string
	mu       sync.Mutex
}

// Open opens (or creates) an event log file for appending, recovering
// the chain tail from the last existing entry so a reopened log keeps
// chaining where it left off.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("eventlog: create directory: %w", err)
	}

	prevHash, err := chainTail(path)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open file: %w", err)
	}

	return &Log{
		path:     path,
		file:     file,
		prevHash: prevHash,
	}, nil
}

// chainTail returns the hash the next appended entry must carry as
// prev_hash: the hash of the log's last line, or GenesisHash for a
// missing or empty log.
func chainTail(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return GenesisHash, nil
		}
		return "", fmt.Errorf("eventlog: read existing log: %w", err)
	}
	defer f.Close()

	var lastLine []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lastLine = append(lastLine[:0], scanner.Bytes()...)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("eventlog: scan existing log: %w", err)
	}

	if len(lastLine) == 0 {
		return GenesisHash, nil
	}
	return HashLine(lastLine), nil
}

// Append writes an event to the log with hash chaining. It fills in
// Timestamp (if empty), EventID (if empty), and PrevHash, marshals to
// one JSON line, writes, and syncs.
func (l *Log) Append(e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(TimeFormat)
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	e.PrevHash = l.prevHash

	if err := e.Validate(); err != nil {
		return err
	}

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("eventlog: marshal event: %w", err)
	}

	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("eventlog: write event: %w", err)
	}

	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("eventlog: sync: %w", err)
	}

	l.prevHash = HashLine(line)
	return nil
}

// Path returns the log file path.
func (l *Log) Path() string { return l.path }

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// HashLine returns "sha256:<hex>" of the given bytes.
func HashLine(line []byte) string {
	h := sha256.Sum256(line)
	return "sha256:" + hex.EncodeToString(h[:])
}
