package store

import (
	"errors"
	"sync"
	"time"

	"shopscope/internal/service/excel"
)

// ErrFileNotFound 文件不存在
var ErrFileNotFound = errors.New("file not found")

// Entry 一个已上传的工作簿
type Entry struct {
	FileName   string
	Parser     *excel.Parser
	UploadedAt time.Time
}

// MemoryStore 已上传文件的内存存储
type MemoryStore struct {
	entries map[string]*Entry
	mu      sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
	}
}

// Put 保存上传的文件
func (s *MemoryStore) Put(fileID, fileName string, parser *excel.Parser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[fileID] = &Entry{
		FileName:   fileName,
		Parser:     parser,
		UploadedAt: time.Now(),
	}
}

// Get 获取已上传的文件
func (s *MemoryStore) Get(fileID string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[fileID]
	if !ok {
		return nil, ErrFileNotFound
	}
	return entry, nil
}

// Delete 删除文件并释放底层工作簿
func (s *MemoryStore) Delete(fileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[fileID]; ok {
		if entry.Parser != nil {
			_ = entry.Parser.Close()
		}
		delete(s.entries, fileID)
	}
}

// Count 当前文件数
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Clear 清空全部文件
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.Parser != nil {
			_ = entry.Parser.Close()
		}
	}
	s.entries = make(map[string]*Entry)
}
