package core

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vibecoding/vct/internal/vctrors"
)

// averageJSONLLineBytes is used only to pre-size the output slice; actual
// capacity grows normally if the estimate is wrong.
const averageJSONLLineBytes = 512

// readBufferSize is the scanner buffer the spec calls for (~128 KiB) to
// avoid re-allocating on typical session-file line lengths.
const readBufferSize = 128 * 1024

// maxLineSize bounds a single JSONL line; session files can carry large
// tool-output payloads so this is generous.
const maxLineSize = 64 * 1024 * 1024

// ReadRecords reads path into an ordered sequence of raw JSON values: one
// value per non-empty line for a .jsonl file, or a single value for a
// whole .json file.
func ReadRecords(path string) ([]json.RawMessage, error) {
	switch filepath.Ext(path) {
	case ".jsonl":
		return readJSONL(path)
	case ".json":
		return readJSON(path)
	default:
		return readJSONL(path)
	}
}

func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vctrors.WithFile(vctrors.NotFound, path, err)
		}
		return nil, vctrors.WithFile(vctrors.IOError, path, err)
	}
	defer f.Close()

	capacity := 0
	if info, statErr := f.Stat(); statErr == nil && info.Size() > 0 {
		capacity = int(info.Size() / averageJSONLLineBytes)
	}
	records := make([]json.RawMessage, 0, capacity)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, readBufferSize), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(trimSpaceBytes(line)) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, vctrors.WithLine(vctrors.ParseError, path, lineNo, fmt.Errorf("malformed JSON line"))
		}
		raw := make(json.RawMessage, len(line))
		copy(raw, line)
		records = append(records, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, vctrors.WithFile(vctrors.IOError, path, err)
	}
	return records, nil
}

func readJSON(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vctrors.WithFile(vctrors.NotFound, path, err)
		}
		return nil, vctrors.WithFile(vctrors.IOError, path, err)
	}
	if len(trimSpaceBytes(data)) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, vctrors.WithFile(vctrors.ParseError, path, fmt.Errorf("malformed JSON document"))
	}
	raw := json.RawMessage(data)
	return []json.RawMessage{raw}, nil
}

func trimSpaceBytes(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpaceByte(b[start]) {
		start++
	}
	for end > start && isSpaceByte(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
