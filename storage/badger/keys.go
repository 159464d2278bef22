package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/codechronicle/core"
)

// Key prefixes for different data types
const (
	sectionRecordPrefix = "secrec"
	queryCachePrefix    = "qcache"
	historyPrefix       = "histrec"
)

// makeSectionKey generates a key for a section within a document.
// Format: prefix:mapCode:sectionID
func makeSectionKey(mapCode, sectionID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", sectionRecordPrefix, mapCode, sectionID))
}

// makeSectionPrefix generates the scan prefix for all sections of a document.
func makeSectionPrefix(mapCode string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", sectionRecordPrefix, mapCode))
}

// makeCacheKey generates a composite key for a cached interpretation.
// Format: prefix:queryHash:promptHash
func makeCacheKey(queryHash, promptHash core.ID) []byte {
	prefix := queryCachePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes per hash
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(queryHash))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(promptHash))
	return buf
}

// makeHistoryKey generates a composite key for a history entry.
// Format: prefix:timestamp:entryID
func makeHistoryKey(timestamp time.Time, entryID string) []byte {
	prefix := historyPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(entryID)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], []byte(entryID))
	return buf
}
