package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultStorageFileName = ".solswap-history.json"
)

// RecordKind distinguishes same-chain swaps from cross-chain bridge orders.
type RecordKind string

const (
	KindSwap   RecordKind = "swap"
	KindBridge RecordKind = "bridge"
)

// Record is one completed or attempted trade.
type Record struct {
	ID          string     `json:"id"`
	Kind        RecordKind `json:"kind"`
	SellSymbol  string     `json:"sell_symbol"`
	SellAmount  string     `json:"sell_amount"`
	BuySymbol   string     `json:"buy_symbol"`
	BuyAmount   string     `json:"buy_amount"`
	Signature   string     `json:"signature,omitempty"`
	OrderID     string     `json:"order_id,omitempty"`
	SlippageBps int        `json:"slippage_bps,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewRecord creates a record with a fresh ID and timestamp.
func NewRecord(kind RecordKind) *Record {
	return &Record{
		ID:        uuid.New().String(),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// Storage handles persistence of trade records
type Storage struct {
	filePath string
	mu       sync.RWMutex
	records  map[string]*Record
}

// recordFile represents the JSON structure for storage
type recordFile struct {
	Records map[string]*Record `json:"records"`
}

// NewStorage creates a new storage instance
func NewStorage(filePath string) (*Storage, error) {
	if filePath == "" {
		// Default to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStorageFileName)
	}

	storage := &Storage{
		filePath: filePath,
		records:  make(map[string]*Record),
	}

	// Load existing records if file exists
	if err := storage.load(); err != nil {
		// If file doesn't exist, that's okay - we'll create it on first save
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
	}

	return storage, nil
}

// load reads records from the storage file
func (s *Storage) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var file recordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal history: %w", err)
	}

	s.records = file.Records
	if s.records == nil {
		s.records = make(map[string]*Record)
	}

	return nil
}

// save writes records to the storage file
func (s *Storage) save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file := recordFile{
		Records: s.records,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to temporary file first, then rename for atomic write
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Add appends a new record to storage
func (s *Storage) Add(record *Record) error {
	s.mu.Lock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	s.records[record.ID] = record
	s.mu.Unlock()

	return s.save()
}

// Get retrieves a record by ID
func (s *Storage) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, fmt.Errorf("record '%s' not found", id)
	}

	return record, nil
}

// List returns all records, newest first
func (s *Storage) List() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records
}

// ListByKind returns records filtered by kind, newest first
func (s *Storage) ListByKind(kind RecordKind) []*Record {
	all := s.List()

	records := make([]*Record, 0)
	for _, record := range all {
		if record.Kind == kind {
			records = append(records, record)
		}
	}

	return records
}

// Count returns the total number of records
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// GetFilePath returns the storage file path
func (s *Storage) GetFilePath() string {
	return s.filePath
}
